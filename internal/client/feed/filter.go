package feed

import (
	"strings"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
)

// Filter is the user controlled part of the view. Zero value shows
// everything the identity may see.
type Filter struct {
	Search     string
	CategoryID string
}

// View is what gets rendered after one pass.
type View struct {
	Seq        uint64
	Videos     []models.Video
	Categories []models.Category
	// Err is set when the pass could not fetch its data; the lists are
	// empty in that case.
	Err error
}

// Apply filters videos for identity and f. Categories are narrowed to the
// ones used by at least one visible video, before search and category
// filters are applied, so the category picker does not shrink as the user
// types. Input order is preserved.
func Apply(identity *models.Identity, videos []models.Video, categories []models.Category, f Filter) View {
	visible := make([]models.Video, 0, len(videos))
	used := make(map[string]struct{})
	for _, v := range videos {
		if !v.VisibleTo(identity) {
			continue
		}
		visible = append(visible, v)
		used[v.CategoryID] = struct{}{}
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	shown := make([]models.Video, 0, len(visible))
	for _, v := range visible {
		if search != "" && !strings.Contains(strings.ToLower(v.Title), search) {
			continue
		}
		if f.CategoryID != "" && v.CategoryID != f.CategoryID {
			continue
		}
		shown = append(shown, v)
	}

	cats := make([]models.Category, 0, len(used))
	for _, c := range categories {
		if _, ok := used[c.ID]; ok {
			cats = append(cats, c)
		}
	}

	return View{Videos: shown, Categories: cats}
}
