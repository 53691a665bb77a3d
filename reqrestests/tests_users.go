package reqrestests

import (
	"fmt"
	"net/http"

	"github.com/reqres-contract-tests/reqres-contract-tests/client"

	"github.com/stretchr/testify/assert"
)

const (
	existingUserID = 2
	missingUserID  = 23
)

func userPath(id int) string {
	return fmt.Sprintf("/api/users/%d", id)
}

func DoUserTests(t *T) {
	t.Run("create", func(t *T) {
		resp := t.Post("/api/users", UserInput{Name: "morpheus", Job: "leader"})
		t.RequireStatus(resp, http.StatusCreated)
		t.AssertField(resp, "name", "morpheus")
		t.AssertField(resp, "job", "leader")
		t.AssertFieldNotNull(resp, "id")
		t.AssertFieldNotNull(resp, "createdAt")
	})

	t.Run("list users", func(t *T) {
		resp := t.Get("/api/users?page=2")
		t.RequireStatus(resp, http.StatusOK)

		var expected, actual UserPage
		t.RequireFixture("list_users_page2", &expected)
		t.RequireDecodedBody(resp, &actual)
		assert.Equal(t, expected, actual, "user list did not match fixture")
	})

	t.Run("single user", func(t *T) {
		resp := t.Get(userPath(existingUserID))
		t.RequireStatus(resp, http.StatusOK)
		t.AssertFieldObject(resp, "data", map[string]interface{}{
			"id":         existingUserID,
			"email":      "janet.weaver@reqres.in",
			"first_name": "Janet",
			"last_name":  "Weaver",
			"avatar":     "https://reqres.in/img/faces/2-image.jpg",
		})
	})

	t.Run("single user not found", func(t *T) {
		resp := t.Get(userPath(missingUserID))
		t.RequireStatus(resp, http.StatusNotFound)
	})

	update := func(send func(*T, string, interface{}) *client.Response) func(*T) {
		return func(t *T) {
			resp := send(t, userPath(existingUserID), UserInput{Name: "morpheus", Job: "zion resident"})
			t.RequireStatus(resp, http.StatusOK)
			t.AssertField(resp, "name", "morpheus")
			t.AssertField(resp, "job", "zion resident")
			t.AssertFieldNotNull(resp, "updatedAt")
		}
	}

	t.Run("update with PUT", update((*T).Put))

	t.Run("update with PATCH", update((*T).Patch))

	t.Run("delete", func(t *T) {
		resp := t.Delete(userPath(existingUserID))
		t.RequireStatus(resp, http.StatusNoContent)
	})

	t.Run("delayed response", func(t *T) {
		resp := t.Get("/api/users?delay=3")
		t.RequireStatus(resp, http.StatusOK)
		// Only the status is checked for the delayed variant.
		t.Debug("delayed response arrived after %s", resp.Elapsed)
	})
}
