package devserver

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/genre"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/apperror"
)

type account struct {
	user.User
	passwordHash []byte
	saved        []string
}

// Store keeps the whole catalog in memory, in insertion order.
type Store struct {
	mu         sync.RWMutex
	bcryptCost int

	users    map[string]*account
	userIDs  []string
	authors  map[string]*author.Author
	authIDs  []string
	genres   map[int]*genre.Genre
	genreIDs []int
	genreSeq int
	books    map[string]*book.Book
	bookIDs  []string
}

func NewStore(bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{
		bcryptCost: bcryptCost,
		users:      map[string]*account{},
		authors:    map[string]*author.Author{},
		genres:     map[int]*genre.Genre{},
		books:      map[string]*book.Book{},
	}
}

// ============================================================
// USERS
// ============================================================

func (s *Store) CreateUser(req user.UserRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(req.Email, "") {
		return nil, ErrEmailTaken
	}
	acc := &account{
		User: user.User{
			ID:       uuid.NewString(),
			Name:     req.Name,
			NickName: req.NickName,
			Email:    req.Email,
			IsAdmin:  req.IsAdmin,
		},
		passwordHash: hash,
	}
	s.users[acc.ID] = acc
	s.userIDs = append(s.userIDs, acc.ID)
	u := acc.User
	return &u, nil
}

// Authenticate checks email (case-insensitive) and password.
func (s *Store) Authenticate(email, password string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userIDs {
		acc := s.users[id]
		if !user.SameEmail(acc.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
			return nil, ErrBadCredentials
		}
		u := acc.User
		return &u, nil
	}
	return nil, ErrBadCredentials
}

func (s *Store) ListUsers() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]user.User, 0, len(s.userIDs))
	for _, id := range s.userIDs {
		out = append(out, s.users[id].User)
	}
	return out
}

// GetUser returns the account with its saved books expanded.
func (s *Store) GetUser(id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := acc.User
	u.SavedBooks = s.savedLocked(acc)
	return &u, nil
}

// UpdateUser replaces the profile. An empty password keeps the old one.
func (s *Store) UpdateUser(id string, req user.UserRequest) (*user.User, error) {
	var hash []byte
	if req.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.emailTakenLocked(req.Email, id) {
		return nil, ErrEmailTaken
	}
	acc.Name, acc.NickName, acc.Email, acc.IsAdmin = req.Name, req.NickName, req.Email, req.IsAdmin
	if hash != nil {
		acc.passwordHash = hash
	}
	u := acc.User
	return &u, nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	s.userIDs = removeString(s.userIDs, id)
	return nil
}

func (s *Store) emailTakenLocked(email, exceptID string) bool {
	for _, id := range s.userIDs {
		if id != exceptID && user.SameEmail(s.users[id].Email, email) {
			return true
		}
	}
	return false
}

// ============================================================
// SAVED BOOKS
// ============================================================

func (s *Store) ListSaved(userID string) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.savedLocked(acc), nil
}

func (s *Store) AddSaved(userID, bookID string) (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	b, ok := s.books[bookID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, id := range acc.saved {
		if id == bookID {
			return nil, ErrBookAlreadySaved
		}
	}
	acc.saved = append(acc.saved, bookID)
	view := s.bookViewLocked(b)
	return &view, nil
}

func (s *Store) RemoveSaved(userID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	before := len(acc.saved)
	acc.saved = removeString(acc.saved, bookID)
	if len(acc.saved) == before {
		return ErrBookNotSaved
	}
	return nil
}

func (s *Store) savedLocked(acc *account) []book.Book {
	out := make([]book.Book, 0, len(acc.saved))
	for _, id := range acc.saved {
		if b, ok := s.books[id]; ok {
			out = append(out, s.bookViewLocked(b))
		}
	}
	return out
}

// ============================================================
// GENRES
// ============================================================

func (s *Store) CreateGenre(req genre.GenreRequest) *genre.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genreSeq++
	g := &genre.Genre{ID: s.genreSeq, Name: req.Name, Description: req.Description}
	s.genres[g.ID] = g
	s.genreIDs = append(s.genreIDs, g.ID)
	out := *g
	return &out
}

func (s *Store) ListGenres() []genre.Genre {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]genre.Genre, 0, len(s.genreIDs))
	for _, id := range s.genreIDs {
		out = append(out, *s.genres[id])
	}
	return out
}

func (s *Store) GetGenre(id int) (*genre.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *g
	return &out, nil
}

func (s *Store) UpdateGenre(id int, req genre.GenreRequest) (*genre.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	g.Name, g.Description = req.Name, req.Description
	out := *g
	return &out, nil
}

func (s *Store) DeleteGenre(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[id]; !ok {
		return ErrNotFound
	}
	for _, b := range s.books {
		if b.HasGenre(id) {
			return ErrGenreInUse
		}
	}
	delete(s.genres, id)
	for i, gid := range s.genreIDs {
		if gid == id {
			s.genreIDs = append(s.genreIDs[:i], s.genreIDs[i+1:]...)
			break
		}
	}
	return nil
}

// ============================================================
// AUTHORS
// ============================================================

func (s *Store) CreateAuthor(req author.AuthorRequest) *author.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &author.Author{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
	}
	s.authors[a.ID] = a
	s.authIDs = append(s.authIDs, a.ID)
	out := *a
	return &out
}

// ListAuthors returns authors; withCount fills BookCount.
func (s *Store) ListAuthors(withCount bool) []author.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]author.Author, 0, len(s.authIDs))
	for _, id := range s.authIDs {
		a := *s.authors[id]
		if withCount {
			a.BookCount = s.bookCountLocked(id)
		}
		out = append(out, a)
	}
	return out
}

func (s *Store) GetAuthor(id string) (*author.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.authors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	out.BookCount = s.bookCountLocked(id)
	return &out, nil
}

func (s *Store) AuthorBooks(id string) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.authors[id]; !ok {
		return nil, ErrNotFound
	}
	return s.filterLocked(book.Filter{AuthorID: id}), nil
}

func (s *Store) UpdateAuthor(id string, req author.AuthorRequest) (*author.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.authors[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.FirstName, a.LastName, a.BirthDate = req.FirstName, req.LastName, req.BirthDate
	out := *a
	out.BookCount = s.bookCountLocked(id)
	return &out, nil
}

// DeleteAuthor enforces the same rule as the client: no delete while books remain.
func (s *Store) DeleteAuthor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[id]; !ok {
		return ErrNotFound
	}
	if s.bookCountLocked(id) > 0 {
		return apperror.ErrAuthorHasBooks
	}
	delete(s.authors, id)
	s.authIDs = removeString(s.authIDs, id)
	return nil
}

func (s *Store) bookCountLocked(authorID string) int {
	n := 0
	for _, b := range s.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n
}

// ============================================================
// BOOKS
// ============================================================

func (s *Store) CreateBook(req book.BookRequest) (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRefsLocked(req); err != nil {
		return nil, err
	}
	b := bookFromRequest(uuid.NewString(), req)
	s.books[b.ID] = b
	s.bookIDs = append(s.bookIDs, b.ID)
	view := s.bookViewLocked(b)
	return &view, nil
}

func (s *Store) GetBook(id string) (*book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	view := s.bookViewLocked(b)
	return &view, nil
}

func (s *Store) UpdateBook(id string, req book.BookRequest) (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return nil, ErrNotFound
	}
	if err := s.checkRefsLocked(req); err != nil {
		return nil, err
	}
	b := bookFromRequest(id, req)
	s.books[id] = b
	view := s.bookViewLocked(b)
	return &view, nil
}

// DeleteBook also drops the book from every saved list.
func (s *Store) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return ErrNotFound
	}
	delete(s.books, id)
	s.bookIDs = removeString(s.bookIDs, id)
	for _, acc := range s.users {
		acc.saved = removeString(acc.saved, id)
	}
	return nil
}

// FilterBooks applies the query the way the catalog API does: title
// substring (case-insensitive), author, genre, then a stable sort.
func (s *Store) FilterBooks(f book.Filter) []book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(f)
}

func (s *Store) filterLocked(f book.Filter) []book.Book {
	title := strings.ToLower(strings.TrimSpace(f.TitleSubstring))
	out := []book.Book{}
	for _, id := range s.bookIDs {
		b := s.books[id]
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if f.AuthorID != "" && b.AuthorID != f.AuthorID {
			continue
		}
		if f.GenreID != nil && !b.HasGenre(*f.GenreID) {
			continue
		}
		out = append(out, s.bookViewLocked(b))
	}

	less := sortLess(f.SortBy)
	if less == nil {
		return out
	}
	desc := f.SortOrder == book.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func sortLess(sortBy string) func(a, b book.Book) bool {
	switch strings.ToLower(sortBy) {
	case strings.ToLower(book.SortByTitle):
		return func(a, b book.Book) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case strings.ToLower(book.SortByPublishYear), "publishedyear":
		return func(a, b book.Book) bool { return yearOf(a) < yearOf(b) }
	default:
		return nil
	}
}

func yearOf(b book.Book) int {
	if b.PublishYear == nil {
		return -1
	}
	return *b.PublishYear
}

func (s *Store) checkRefsLocked(req book.BookRequest) error {
	if _, ok := s.authors[req.AuthorID]; !ok {
		return ErrUnknownAuthor
	}
	for _, gid := range req.GenreIDs {
		if _, ok := s.genres[gid]; !ok {
			return ErrUnknownGenre
		}
	}
	return nil
}

// bookViewLocked fills the read-side display fields.
func (s *Store) bookViewLocked(b *book.Book) book.Book {
	view := *b
	view.GenreIDs = append([]int(nil), b.GenreIDs...)
	if a, ok := s.authors[b.AuthorID]; ok {
		view.AuthorName = a.FullName()
	}
	view.GenreNames = nil
	for _, gid := range b.GenreIDs {
		if g, ok := s.genres[gid]; ok {
			view.GenreNames = append(view.GenreNames, g.Name)
		}
	}
	return view
}

func bookFromRequest(id string, req book.BookRequest) *book.Book {
	b := &book.Book{
		ID:       id,
		Title:    req.Title,
		AuthorID: req.AuthorID,
		ISBN:     req.ISBN,
		Price:    req.Price,
		GenreIDs: append([]int(nil), req.GenreIDs...),
	}
	if req.PublishYear != nil {
		year := *req.PublishYear
		b.PublishYear = &year
	}
	return b
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
