package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(api *fakeClient) CatalogService {
	return NewCatalogService(api, logging.NewDiscardLogger())
}

func TestCreateVideo_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		in     models.VideoInput
		fields []string
	}{
		{"empty", models.VideoInput{}, []string{"title", "link", "category_id"}},
		{"bad url", models.VideoInput{Title: "T", Link: "not a url", CategoryID: "c1"}, []string{"link"}},
		{"blank title", models.VideoInput{Title: "   ", Link: "https://youtu.be/abcdefghijk", CategoryID: "c1"}, []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeClient{}
			v, err := newCatalog(api).CreateVideo(context.Background(), tt.in)
			require.Nil(t, v)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ElementsMatch(t, tt.fields, keys(verr.Fields))
			assert.Zero(t, api.VideoCalls)
		})
	}
}

func TestCreateVideo_Success(t *testing.T) {
	api := &fakeClient{}
	in := models.VideoInput{Title: " Intro ", Link: "https://www.youtube.com/watch?v=abcdefghijk", CategoryID: "c1", AllowedUsers: []string{"1"}}

	v, err := newCatalog(api).CreateVideo(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "v-new", v.ID)
	assert.Equal(t, "Intro", v.Title)
	assert.Equal(t, []string{"1"}, v.AllowedUsers)
}

func TestUpdateVideo_ValidatesAndPropagates(t *testing.T) {
	ctx := context.Background()
	api := &fakeClient{UpdateVideoFn: func(string, models.VideoInput) (*models.Video, error) {
		return nil, client.ErrNotFound
	}}
	svc := newCatalog(api)

	_, err := svc.UpdateVideo(ctx, "v1", models.VideoInput{Title: "T"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, api.VideoCalls)

	_, err = svc.UpdateVideo(ctx, "v1", models.VideoInput{Title: "T", Link: "https://x.org/v", CategoryID: "c1"})
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, 1, api.VideoCalls)
}

func TestListVideos_PassesQuery(t *testing.T) {
	api := &fakeClient{Videos: []models.Video{{ID: "v1"}}}
	q := models.VideoQuery{CategoryID: "c1", UserID: "7"}

	videos, err := newCatalog(api).ListVideos(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, videos, 1)
	assert.Equal(t, q, api.LastVideoQuery)

	api.ListVideosErr = client.ErrUnavailable
	videos, err = newCatalog(api).ListVideos(context.Background(), q)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, videos)
}

func TestGetAndDeleteVideo(t *testing.T) {
	ctx := context.Background()
	api := &fakeClient{Videos: []models.Video{{ID: "v1", Title: "Intro"}}}
	svc := newCatalog(api)

	v, err := svc.GetVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Intro", v.Title)

	_, err = svc.GetVideo(ctx, "missing")
	require.ErrorIs(t, err, client.ErrNotFound)

	require.NoError(t, svc.DeleteVideo(ctx, "v1"))
	assert.Equal(t, []string{"v1"}, api.DeletedVideos)
}

func TestCreateCategory_Uniqueness(t *testing.T) {
	ctx := context.Background()
	api := &fakeClient{Categories: []models.Category{{ID: "c1", Name: " Safety "}}}
	svc := newCatalog(api)

	_, err := svc.CreateCategory(ctx, models.CategoryInput{Name: "safety"})
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The field 'name' must be unique.", verr.Fields["name"])

	_, err = svc.CreateCategory(ctx, models.CategoryInput{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)

	created, err := svc.CreateCategory(ctx, models.CategoryInput{Name: "  Onboarding "})
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", created.Name)
	assert.Equal(t, []models.CategoryInput{{Name: "Onboarding"}}, api.CreatedCategories)
}

func TestCreateCategory_ListFailure(t *testing.T) {
	api := &fakeClient{ListCategoriesErr: client.ErrUnavailable}

	_, err := newCatalog(api).CreateCategory(context.Background(), models.CategoryInput{Name: "New"})
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Empty(t, api.CreatedCategories)
}

func TestUpdateCategory_OwnNameAllowed(t *testing.T) {
	ctx := context.Background()
	api := &fakeClient{Categories: []models.Category{{ID: "c1", Name: "Safety"}, {ID: "c2", Name: "Onboarding"}}}
	svc := newCatalog(api)

	got, err := svc.UpdateCategory(ctx, "c1", models.CategoryInput{Name: "SAFETY"})
	require.NoError(t, err)
	assert.Equal(t, "SAFETY", got.Name)

	_, err = svc.UpdateCategory(ctx, "c1", models.CategoryInput{Name: "onboarding"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Len(t, api.UpdatedCategories, 1)
}

func TestGetListDeleteCategory(t *testing.T) {
	ctx := context.Background()
	api := &fakeClient{Categories: []models.Category{{ID: "c1", Name: "Safety"}}}
	svc := newCatalog(api)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	c, err := svc.GetCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Safety", c.Name)

	require.NoError(t, svc.DeleteCategory(ctx, "c1"))
	assert.Equal(t, []string{"c1"}, api.DeletedCategories)
}

func TestEmbedURL(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=10":                 "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":         "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtube.com/watch?v=a-b_c1234567&list=xyz": "https://www.youtube.com/embed/a-b_c123456",
		"https://vimeo.com/12345":                           "https://vimeo.com/12345",
		"":                                                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, EmbedURL(in), in)
	}
}

func TestCountAllowed(t *testing.T) {
	users := []models.Identity{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	assert.Equal(t, 2, CountAllowed(models.Video{AllowedUsers: []string{"1", "3", "gone"}}, users))
	assert.Zero(t, CountAllowed(models.Video{}, users))
	assert.Zero(t, CountAllowed(models.Video{AllowedUsers: []string{"1"}}, nil))
}

func TestValidationError_Message(t *testing.T) {
	err := (*ValidationError)(nil).add("name", "required").add("email", "email").add("name", "unique")
	assert.Equal(t, "validation failed: The field 'email' must be a valid email address. The field 'name' is required.", err.Error())
	assert.Nil(t, (*ValidationError)(nil).asError())
}
