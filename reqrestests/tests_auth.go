package reqrestests

import (
	"net/http"
)

const (
	registeredEmail  = "eve.holt@reqres.in"
	registeredUserID = 4
	expectedToken    = "QpwL5tke4Pnpja7X4"
	missingPassword  = "Missing password"
)

func DoAuthTests(t *T) {
	t.Run("register successful", func(t *T) {
		resp := t.Post("/api/register", Credentials{Email: registeredEmail, Password: "pistol"})
		t.RequireStatus(resp, http.StatusOK)
		t.AssertField(resp, "id", registeredUserID)
		t.AssertField(resp, "token", expectedToken)
	})

	t.Run("register unsuccessful", func(t *T) {
		resp := t.PostRaw("/api/register", `{
    "email": "sydney@fife"
}`)
		t.RequireStatus(resp, http.StatusBadRequest)
		t.AssertField(resp, "error", missingPassword)
	})

	t.Run("login successful", func(t *T) {
		resp := t.PostRaw("/api/login", `{
    "email": "eve.holt@reqres.in",
    "password": "cityslicka"
}`)
		t.RequireStatus(resp, http.StatusOK)
		t.AssertField(resp, "token", expectedToken)
	})

	t.Run("login unsuccessful", func(t *T) {
		resp := t.Post("/api/login", Credentials{Email: "peter@klaven"})
		t.RequireStatus(resp, http.StatusBadRequest)
		t.AssertField(resp, "error", missingPassword)
	})
}
