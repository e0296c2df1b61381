package callback

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"consentflow/pkg/testutil"
)

func TestCallback(t *testing.T) {
	testutil.Given(t, "a callback handler", func(t *testing.T) {
		var logs bytes.Buffer
		r := chi.NewRouter()
		New(slog.New(slog.NewJSONHandler(&logs, nil))).Register(r)

		testutil.When(t, "the browser arrives with a code", func(t *testing.T) {
			rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/callback?code=auth-code-1&state=xyz"))

			testutil.Then(t, "it confirms and logs the code", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				assert.Equal(t, successMessage, rr.Body.String())
				assert.Contains(t, logs.String(), `"code":"auth-code-1"`)
				assert.Contains(t, logs.String(), `"state":"xyz"`)
			})
		})

		testutil.When(t, "the method is not GET", func(t *testing.T) {
			rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodPost, "/callback"))

			testutil.Then(t, "it is rejected", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
			})
		})
	})
}
