package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/egliseduberger/website/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseData(page string) Data {
	return Data{
		"currentPage":      page,
		"user":             (*models.CurrentUser)(nil),
		"footerMinistries": []models.Ministry{},
	}
}

func TestNewTemplateRenderer_AllViews(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	for _, name := range []string{
		"index", "about", "ministries", "media", "events", "event-detail", "contact",
		"login", "give", "404", "error", "sermon-form", "value-form", "team-form",
		"ministry-form", "event-form", "faq-form", "admin-messages", "admin-message-detail",
	} {
		assert.True(t, renderer.Has(name), name)
	}
	assert.False(t, renderer.Has("layout"))
}

func TestTemplateRenderer_Render(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	preached := time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC)
	eventDate := time.Date(2030, 2, 14, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		view     string
		data     func() Data
		contains []string
		excludes []string
	}{
		{
			name: "anonymous layout",
			view: "give",
			data: func() Data { return baseData("give") },
			contains: []string{
				"Faire un don",
				`href="/login"`,
			},
			excludes: []string{"Connecté en tant que"},
		},
		{
			name: "signed in layout with footer ministries",
			view: "give",
			data: func() Data {
				d := baseData("give")
				d["user"] = &models.CurrentUser{ID: 1, Username: "admin", Role: "admin"}
				d["footerMinistries"] = []models.Ministry{
					{ID: 1, Name: "Jeunesse"}, {ID: 2, Name: "Louange"}, {ID: 3, Name: "Enfants"}, {ID: 4, Name: "Prière"},
				}
				return d
			},
			contains: []string{
				"Connecté en tant que <strong>admin</strong>",
				"Jeunesse", "Enfants",
				"Voir tous les ministères",
			},
			excludes: []string{"Prière", `href="/login"`},
		},
		{
			name: "media with featured and pagination",
			view: "media",
			data: func() Data {
				d := baseData("media")
				d["featuredSermon"] = &models.Sermon{ID: 9, Title: "La grâce", Preacher: "Marc", DatePreached: preached, Category: "Cultes"}
				d["recentSermons"] = []models.Sermon{{ID: 8, Title: "La foi", DatePreached: preached, Category: "Cultes"}}
				d["currentPaginationPage"] = 1
				d["totalPages"] = 3
				d["currentCategory"] = "Cultes"
				d["categories"] = []string{"Cultes", "Enseignements"}
				return d
			},
			contains: []string{
				"La grâce", "La foi", "4 août 2024",
				`/media?page=2&category=Cultes`,
				"Suivant",
			},
			excludes: []string{"Précédent", "/sermons/edit/9"},
		},
		{
			name: "empty media",
			view: "media",
			data: func() Data {
				d := baseData("media")
				d["featuredSermon"] = (*models.Sermon)(nil)
				d["recentSermons"] = []models.Sermon{}
				d["currentPaginationPage"] = 1
				d["totalPages"] = 1
				d["currentCategory"] = ""
				d["categories"] = []string{}
				return d
			},
			contains: []string{"Aucune prédication pour le moment."},
			excludes: []string{"pagination"},
		},
		{
			name: "sermon edit form keeps submitted values",
			view: "sermon-form",
			data: func() Data {
				d := baseData("media")
				d["sermon"] = &models.Sermon{
					ID: 4, Title: `Le "Bon" Berger`, Preacher: "Marc", Series: "Jean", DatePreached: preached,
					Duration: "42 min", Category: "Enseignements", Description: "Texte",
				}
				return d
			},
			contains: []string{
				`action="/sermons/update/4"`,
				`value="Le &#34;Bon&#34; Berger"`,
				`value="2024-08-04"`,
				`value="42 min"`,
				">Texte</textarea>",
			},
		},
		{
			name: "sermon new form",
			view: "sermon-form",
			data: func() Data {
				d := baseData("media")
				d["sermon"] = &models.Sermon{}
				return d
			},
			contains: []string{`action="/sermons/create"`, `name="date_preached" value=""`},
		},
		{
			name: "event detail",
			view: "event-detail",
			data: func() Data {
				d := baseData("events")
				d["event"] = &models.Event{ID: 3, Title: "Souper", DateEvent: eventDate, Location: "Salle"}
				return d
			},
			contains: []string{"Souper", "14 février 2030 à 18h30", "Salle"},
		},
		{
			name: "login error",
			view: "login",
			data: func() Data {
				d := baseData("login")
				d["error"] = "Nom d'utilisateur ou mot de passe incorrect"
				return d
			},
			contains: []string{"Nom d&#39;utilisateur ou mot de passe incorrect"},
		},
		{
			name: "contact success",
			view: "contact",
			data: func() Data {
				d := baseData("contact")
				d["faqs"] = []models.FAQ{{ID: 1, Question: "Où?", Answer: "Ici"}}
				d["success"] = true
				return d
			},
			contains: []string{"Votre message a bien été envoyé", "Où?"},
		},
		{
			name: "admin inbox",
			view: "admin-messages",
			data: func() Data {
				d := baseData("admin")
				d["user"] = &models.CurrentUser{ID: 1, Username: "admin"}
				d["messages"] = []models.ContactMessage{
					{ID: 2, FirstName: "Luc", LastName: "Roy", Subject: "", CreatedAt: preached},
				}
				return d
			},
			contains: []string{"Luc Roy", "(sans sujet)", "/admin/messages/toggle-read/2", "Marquer lu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderer.Render(&buf, tt.view, tt.data()))

			html := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestTemplateRenderer_RenderErrors(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, renderer.Render(&buf, "missing", baseData("")))
	assert.Zero(t, buf.Len())

	// a page whose data cannot be evaluated writes nothing
	d := baseData("events")
	d["event"] = "not an event"
	assert.Error(t, renderer.Render(&buf, "event-detail", d))
	assert.Zero(t, buf.Len())
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, UserFrom(ctx))
	assert.NotNil(t, FooterMinistriesFrom(ctx))
	assert.Empty(t, FooterMinistriesFrom(ctx))

	user := &models.CurrentUser{ID: 1, Username: "admin", Role: "admin"}
	ctx = WithUser(ctx, user)
	ctx = WithFooterMinistries(ctx, []models.Ministry{{ID: 1, Name: "Jeunesse"}})

	assert.Equal(t, user, UserFrom(ctx))
	assert.Len(t, FooterMinistriesFrom(ctx), 1)
}
