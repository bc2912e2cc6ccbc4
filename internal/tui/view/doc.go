// Package view renders the screens of the town report TUI.
//
// Each screen is a small struct holding what it needs to draw plus a Render
// method taking the available width. Screens read session state but never
// mutate it; all changes go through the handlers.
//
// # Screens
//
//   - [TitleView]: splash with the start button
//   - [HomeView]: greeting, points and the start-report button
//   - [CameraView]: live preview or the frozen snapshot
//   - [MapView]: map grid with the pin and the report button
//   - [ReportsView]: newest-first list of completed reports
//   - [ProfileView]: name, icon and points with edit prompts
//
// [MenuBarView] and [NoticeView] are drawn around the active screen.
package view
