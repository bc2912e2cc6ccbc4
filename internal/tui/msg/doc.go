// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// Results of background platform calls (camera open, geolocation lookup,
// icon read) carry the view generation they were issued under so the model
// can drop results that arrive after the user has moved on.
package msg
