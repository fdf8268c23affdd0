package devserver

import (
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/domains/user"
)

// Seed creates the first admin and the "unknown" genre on an empty store.
func Seed(store *Store, adminEmail, adminPassword string) error {
	if len(store.ListGenres()) == 0 {
		store.CreateGenre(genre.GenreRequest{Name: genre.UnknownName, Description: "Books without a genre"})
	}
	if len(store.ListUsers()) > 0 {
		return nil
	}

	admin, err := store.CreateUser(user.UserRequest{
		IsAdmin:  true,
		Name:     "Administrator",
		NickName: "admin",
		Email:    adminEmail,
		Password: adminPassword,
	})
	if err != nil {
		return err
	}
	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("seeded admin account")
	return nil
}
