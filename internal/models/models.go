package models

import (
	"strconv"
	"time"

	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
)

// DrawingSession is one student's drawing session and its gallery.
type DrawingSession struct {
	ID        string
	Gallery   *gallery.Gallery
	CreatedAt time.Time
}

// SessionView is the JSON shape of a session.
type SessionView struct {
	ID        string      `json:"id"`
	Images    []ImageItem `json:"images"`
	Selected  *int        `json:"selected"`
	CreatedAt time.Time   `json:"created_at"`
}

// ImageItem represents one generated image in the gallery
type ImageItem struct {
	Index     int       `json:"index"`
	Locator   string    `json:"locator"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// View renders the session for the API.
func (s *DrawingSession) View() SessionView {
	refs := s.Gallery.Images()
	view := SessionView{
		ID:        s.ID,
		Images:    make([]ImageItem, 0, len(refs)),
		CreatedAt: s.CreatedAt,
	}
	for i, ref := range refs {
		view.Images = append(view.Images, ImageItem{
			Index:     i,
			Locator:   ref.Locator,
			ImageURL:  imageURL(s.ID, i),
			CreatedAt: ref.CreatedAt,
		})
	}
	if i, ok := s.Gallery.Selection().Index(); ok {
		view.Selected = &i
	}
	return view
}

func imageURL(sessionID string, index int) string {
	return "/api/sessions/" + sessionID + "/images/" + strconv.Itoa(index)
}
