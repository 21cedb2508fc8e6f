package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentForms(t *testing.T) {
	tests := []struct {
		name            string
		prefix          string
		newPath         string
		form            url.Values
		listPath        string
		redirectTo      string
		editContains    []string
		listContains    string
		notFoundMessage string
		createMessage   string
		setErr          func(site *testSite)
	}{
		{
			name:            "team",
			prefix:          "/team",
			newPath:         "/team/new",
			form:            url.Values{"name": {"Paul"}, "role": {"Pasteur"}, "bio": {"Bio"}, "display_order": {"2"}},
			listPath:        "/about",
			redirectTo:      "/about",
			editContains:    []string{`value="Paul"`, `value="Pasteur"`, `value="2"`},
			listContains:    "Paul",
			notFoundMessage: "Membre non trouvé",
			createMessage:   "Erreur lors de la création du membre",
			setErr:          func(site *testSite) { site.team.err = errDatabase },
		},
		{
			name:            "values",
			prefix:          "/values",
			newPath:         "/values/new",
			form:            url.Values{"title": {"Amour"}, "description": {"Aimer"}, "icon": {"heart"}, "display_order": {""}},
			listPath:        "/about",
			redirectTo:      "/about#values",
			editContains:    []string{`value="Amour"`, `value="heart"`, `value="0"`},
			listContains:    "Amour",
			notFoundMessage: "Valeur non trouvée",
			createMessage:   "Erreur lors de la création de la valeur",
			setErr:          func(site *testSite) { site.values.err = errDatabase },
		},
		{
			name:            "ministries",
			prefix:          "/ministries",
			newPath:         "/ministries/new",
			form:            url.Values{"name": {"Jeunesse"}, "short_description": {"Ados"}, "schedule": {"Vendredi 19h"}},
			listPath:        "/ministries",
			redirectTo:      "/ministries",
			editContains:    []string{`value="Jeunesse"`, `value="Ados"`, `value="Vendredi 19h"`},
			listContains:    "Jeunesse",
			notFoundMessage: "Ministère non trouvé",
			createMessage:   "Erreur lors de la création du ministère",
			setErr:          func(site *testSite) { site.ministries.err = errDatabase },
		},
		{
			name:            "events",
			prefix:          "/events",
			newPath:         "/events/new",
			form:            url.Values{"title": {"Souper"}, "date_event": {"2030-02-14T18:30"}, "location": {"Salle"}, "category": {"Social"}},
			listPath:        "/events",
			redirectTo:      "/events",
			editContains:    []string{`value="Souper"`, `value="2030-02-14T18:30"`, `value="Salle"`},
			listContains:    "Souper",
			notFoundMessage: "Événement non trouvé",
			createMessage:   "Erreur lors de la création",
			setErr:          func(site *testSite) { site.events.err = errDatabase },
		},
		{
			name:            "faqs",
			prefix:          "/faqs",
			newPath:         "/faqs/create",
			form:            url.Values{"question": {"Heure du culte?"}, "answer": {"10h"}, "display_order": {"1"}},
			listPath:        "/contact",
			redirectTo:      "/contact",
			editContains:    []string{`value="Heure du culte?"`, ">10h</textarea>"},
			listContains:    "Heure du culte?",
			notFoundMessage: "FAQ non trouvée",
			createMessage:   "Erreur lors de la création de la FAQ",
			setErr:          func(site *testSite) { site.faqs.err = errDatabase },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t)
			cookie := site.login(t)

			rec := site.do(t, http.MethodGet, tt.newPath, nil, cookie)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `action="`+tt.prefix+`/create"`)

			rec = site.do(t, http.MethodPost, tt.prefix+"/create", tt.form, cookie)
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.redirectTo, rec.Header().Get("Location"))

			rec = site.do(t, http.MethodGet, tt.listPath, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.listContains)

			rec = site.do(t, http.MethodGet, tt.prefix+"/edit/1", nil, cookie)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `action="`+tt.prefix+`/update/1"`)
			for _, s := range tt.editContains {
				assert.Contains(t, rec.Body.String(), s)
			}

			rec = site.do(t, http.MethodPost, tt.prefix+"/update/1", tt.form, cookie)
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.redirectTo, rec.Header().Get("Location"))

			rec = site.do(t, http.MethodPost, tt.prefix+"/delete/1", nil, cookie)
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.redirectTo, rec.Header().Get("Location"))

			rec = site.do(t, http.MethodGet, tt.prefix+"/edit/1", nil, cookie)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.notFoundMessage)

			rec = site.do(t, http.MethodGet, tt.prefix+"/edit/abc", nil, cookie)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			tt.setErr(site)
			rec = site.do(t, http.MethodPost, tt.prefix+"/create", tt.form, cookie)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.createMessage)
		})
	}
}
