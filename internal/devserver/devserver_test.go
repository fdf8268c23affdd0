package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/apperror"
)

const (
	adminEmail = "admin@library.local"
	adminPass  = "Admin123"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv, err := New(Options{
		JWTSecret:     "test-secret",
		BcryptCost:    bcrypt.MinCost,
		AdminEmail:    adminEmail,
		AdminPassword: adminPass,
	})
	require.NoError(t, err)
	return srv
}

func call(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server, email, password string) user.LoginResponse {
	t.Helper()
	rec := call(t, srv, http.MethodPost, "/User/login", "", user.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res user.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLoginAndRegister(t *testing.T) {
	srv := newTestServer(t)

	admin := login(t, srv, "ADMIN@library.local", adminPass)
	assert.True(t, admin.User.IsAdmin)
	assert.NotEmpty(t, admin.Token)

	rec := call(t, srv, http.MethodPost, "/User/login", "", user.LoginRequest{Email: adminEmail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	reg := user.UserRequest{Name: "Reader", NickName: "rd", Email: "reader@x.io", Password: "Secret1!"}
	rec = call(t, srv, http.MethodPost, "/User/register", "", reg)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = call(t, srv, http.MethodPost, "/User/register", "", reg)
	assert.Equal(t, http.StatusConflict, rec.Code)

	reg.Email, reg.IsAdmin = "sneaky@x.io", true
	rec = call(t, srv, http.MethodPost, "/User/register", "", reg)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, srv, http.MethodPost, "/User/register", admin.Token, reg)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)
	rec := call(t, srv, http.MethodPost, "/User/register", "", user.UserRequest{Name: "X", NickName: "x", Email: "bad", Password: "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email format")
	assert.Contains(t, rec.Body.String(), "Password must be at least 8 characters")
}

func TestUserRoutesAreGuarded(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, adminEmail, adminPass)

	rec := call(t, srv, http.MethodPost, "/User/register", "", user.UserRequest{Name: "Reader", NickName: "rd", Email: "reader@x.io", Password: "Secret1!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	reader := login(t, srv, "reader@x.io", "Secret1!")

	rec = call(t, srv, http.MethodGet, "/User", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, srv, http.MethodGet, "/User", reader.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.MsgAdminOnly)

	rec = call(t, srv, http.MethodGet, "/User/"+admin.User.ID, reader.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, srv, http.MethodGet, "/User/"+reader.User.ID, reader.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, srv, http.MethodDelete, "/User/"+admin.User.ID, admin.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, srv, http.MethodDelete, "/User/"+reader.User.ID, admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorWithBooksCannotBeDeleted(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, adminEmail, adminPass)

	rec := call(t, srv, http.MethodPost, "/Author", admin.Token, author.AuthorRequest{FirstName: "Frank", LastName: "Herbert", BirthDate: "1920-10-08T00:00:00Z"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decode[author.Author](t, rec)

	year := 1965
	rec = call(t, srv, http.MethodPost, "/Book", admin.Token, book.BookRequest{Title: "Dune", AuthorID: a.ID, PublishYear: &year, GenreIDs: []int{1}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[book.Book](t, rec)
	assert.Equal(t, "Frank Herbert", b.AuthorName)
	assert.Equal(t, []string{"unknown"}, b.GenreNames)

	rec = call(t, srv, http.MethodGet, "/Author/with-book-count", "", nil)
	authors := decode[[]author.Author](t, rec)
	require.Len(t, authors, 1)
	assert.Equal(t, 1, authors[0].BookCount)

	rec = call(t, srv, http.MethodDelete, "/Author/"+a.ID, admin.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, srv, http.MethodDelete, "/Book/"+b.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = call(t, srv, http.MethodDelete, "/Author/"+a.ID, admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFilterOrdering(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, adminEmail, adminPass)

	a := srv.Store.CreateAuthor(author.AuthorRequest{FirstName: "Frank", LastName: "Herbert", BirthDate: "1920-10-08"})
	for _, y := range []int{1965, 1984, 1969} {
		year := y
		_, err := srv.Store.CreateBook(book.BookRequest{Title: fmt.Sprintf("Dune %d", y), AuthorID: a.ID, PublishYear: &year, GenreIDs: []int{1}})
		require.NoError(t, err)
	}
	_, err := srv.Store.CreateBook(book.BookRequest{Title: "Other", AuthorID: a.ID, GenreIDs: []int{1}})
	require.NoError(t, err)

	rec := call(t, srv, http.MethodGet, "/Book/filter?searchTitle=dune&sortBy=publishYear&sortOrder=desc", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[[]book.Book](t, rec)
	require.Len(t, books, 3)
	assert.Equal(t, 1984, *books[0].PublishYear)
	assert.Equal(t, 1969, *books[1].PublishYear)
	assert.Equal(t, 1965, *books[2].PublishYear)

	rec = call(t, srv, http.MethodGet, "/Book/filter?sortOrder=sideways", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedBooksRelation(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, adminEmail, adminPass)

	a := srv.Store.CreateAuthor(author.AuthorRequest{FirstName: "Ursula", LastName: "Le Guin", BirthDate: "1929-10-21"})
	b, err := srv.Store.CreateBook(book.BookRequest{Title: "The Dispossessed", AuthorID: a.ID, GenreIDs: []int{1}})
	require.NoError(t, err)

	path := "/User/" + admin.User.ID + "/saved-books"
	rec := call(t, srv, http.MethodPost, path+"/"+b.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, srv, http.MethodPost, path+"/"+b.ID, admin.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, srv, http.MethodGet, path, admin.Token, nil)
	saved := decode[[]book.Book](t, rec)
	require.Len(t, saved, 1)
	assert.Equal(t, b.ID, saved[0].ID)

	rec = call(t, srv, http.MethodDelete, path+"/"+b.ID, admin.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = call(t, srv, http.MethodDelete, path+"/"+b.ID, admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndNoRoute(t *testing.T) {
	srv := newTestServer(t)
	rec := call(t, srv, http.MethodGet, "/Nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, call(t, srv, http.MethodGet, "/health", "", nil))["status"])
}
