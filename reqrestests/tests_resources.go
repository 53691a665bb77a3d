package reqrestests

import (
	"net/http"
)

func DoResourceTests(t *T) {
	t.Run("list resources", func(t *T) {
		resp := t.Get("/api/unknown")
		t.RequireStatus(resp, http.StatusOK)
		t.AssertFieldNotNull(resp, "data")
	})

	t.Run("single resource", func(t *T) {
		resp := t.Get("/api/unknown/2")
		t.RequireStatus(resp, http.StatusOK)
		t.AssertBodyMatchesFixture(resp, "single_resource_2")
	})

	t.Run("single resource not found", func(t *T) {
		resp := t.Get("/api/unknown/23")
		t.RequireStatus(resp, http.StatusNotFound)
	})
}
