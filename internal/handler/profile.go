package handler

import (
	"context"
	"image"
	"path/filepath"
	"strings"

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
	"github.com/Iron-Ham/townreport/internal/event"
	"github.com/Iron-Ham/townreport/internal/imaging"
	"github.com/Iron-Ham/townreport/internal/navigator"
)

// IconResult is the outcome of reading an icon file.
type IconResult struct {
	Generation uint64
	Path       string
	Icon       image.Image
	Ref        string
	Err        error
}

// Profile edits the display name and icon.
type Profile struct {
	Deps
}

// NewProfile creates the profile handler.
func NewProfile(deps Deps) *Profile {
	return &Profile{Deps: deps}
}

// Rename sets the display name to the trimmed input. Blank input is
// rejected and the name is kept.
func (p *Profile) Rename(name string) (Notice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return p.fail(apperrors.NewValidationError("name", "must not be empty"), "profile.name_empty", nil)
	}
	p.State.Profile.Name = name
	p.publish(event.NewProfileUpdatedEvent("name", name))
	return Notice{}, nil
}

// LoadIcon reads and decodes an icon file. It blocks and is safe to call
// off the event loop.
func (p *Profile) LoadIcon(ctx context.Context, path string, gen uint64) IconResult {
	res := IconResult{Generation: gen, Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	img, err := imaging.LoadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	ref, err := imaging.DataURL(img)
	if err != nil {
		res.Err = err
		return res
	}
	res.Icon = img
	res.Ref = ref
	return res
}

// ApplyIcon shows a loaded icon. Stale results are discarded.
func (p *Profile) ApplyIcon(res IconResult) (Notice, error) {
	if p.stale("profile.icon", res.Generation, navigator.Profile) {
		return Notice{}, nil
	}
	if res.Err != nil {
		d := p.Deps
		d.Logger = p.logger().With("path", res.Path)
		return d.fail(res.Err, "profile.icon_failed", nil)
	}
	p.State.Profile.Icon = res.Icon
	p.State.Profile.IconRef = res.Ref
	p.State.Profile.IconPath = res.Path
	p.publish(event.NewProfileUpdatedEvent("icon", filepath.Base(res.Path)))
	return Notice{}, nil
}
