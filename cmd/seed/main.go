package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/comment"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/openlibrary"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var classics = []book.NewBook{
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", PubYear: 1937},
	{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", PubYear: 1954},
	{Title: "The Return of the King", Author: "J.R.R. Tolkien", PubYear: 1955},
	{Title: "Dune", Author: "Frank Herbert", PubYear: 1965},
	{Title: "Neuromancer", Author: "William Gibson", PubYear: 1984},
	{Title: "Nineteen Eighty-Four", Author: "George Orwell", PubYear: 1949},
	{Title: "Brave New World", Author: "Aldous Huxley", PubYear: 1932},
	{Title: "Foundation", Author: "Isaac Asimov", PubYear: 1951},
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", PubYear: 1969},
	{Title: "Fahrenheit 451", Author: "Ray Bradbury", PubYear: 1953},
}

var sampleComments = []string{
	"A classic worth rereading.",
	"Slow start, brilliant ending.",
	"Not my favourite, but the world building is superb.",
	"Read it in one sitting.",
}

func main() {
	generated := flag.Int("generated", 0, "number of extra generated books to insert")
	withComments := flag.Bool("comments", true, "add sample comments to the classics")
	olQuery := flag.String("openlibrary", "", "also import books matching this Open Library search")
	olLimit := flag.Int("openlibrary-limit", 50, "maximum number of Open Library results")
	olURL := flag.String("openlibrary-url", openlibrary.DefaultBaseURL, "Open Library base URL")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	cfg := config.MustLoad("")
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "bookcatalog-seed"})
	log := logger.Named("seed")

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	books := book.NewService(book.NewPostgresRepo(pool, cfg.DB.QueryTimeout), nil)
	comments := comment.NewPostgresRepo(pool, cfg.DB.QueryTimeout)
	policy := comment.NewPolicy(cfg.Moderation.MaxLength, cfg.Moderation.ForbiddenWords, cfg.Moderation.DeleteWindow)

	all := append([]book.NewBook(nil), classics...)
	all = append(all, generate(*generated)...)
	if *olQuery != "" {
		client := openlibrary.NewClient(*olURL, "bookcatalog-seed/1.0", 2, 3)
		imported, err := client.Books(ctx, *olQuery, *olLimit)
		if err != nil {
			log.Fatal().Err(err).Str("query", *olQuery).Msg("open library search failed")
		}
		log.Info().Int("count", len(imported)).Str("query", *olQuery).Msg("fetched from open library")
		all = append(all, imported...)
	}

	log.Info().Int("count", len(all)).Msg("inserting books")
	for i, nb := range all {
		b, err := books.Add(ctx, nb)
		if err != nil {
			log.Fatal().Err(err).Str("title", nb.Title).Msg("failed to insert book")
		}

		if *withComments && i < len(classics) {
			text := sampleComments[i%len(sampleComments)]
			if err := policy.ValidateText(text); err != nil {
				log.Warn().Err(err).Msg("skipping sample comment")
				continue
			}
			if _, err := comments.Add(ctx, b.ID, "seed@example.com", text); err != nil {
				log.Fatal().Err(err).Int64("book_id", b.ID).Msg("failed to insert comment")
			}
		}

		if (i+1)%1000 == 0 {
			log.Info().Int("done", i+1).Int("total", len(all)).Msg("progress")
		}
	}

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatal().Err(err).Msg("failed to count books")
	}
	log.Info().Int("books", total).Msg("seed complete")
}

var words = []string{
	"Shadow", "River", "Empire", "Garden", "Machine", "Winter", "Signal", "Harbor",
	"Archive", "Lantern", "Orbit", "Meridian", "Cipher", "Atlas", "Ember",
}

var authors = []string{
	"Ada Marlow", "Ben Okafor", "Chen Wei", "Dara Novak", "Eli Sandoval",
	"Farah Haddad", "Gus Lindqvist", "Hana Sato",
}

func generate(n int) []book.NewBook {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out := make([]book.NewBook, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, book.NewBook{
			Title:   fmt.Sprintf("%s of the %s %d", words[rng.Intn(len(words))], words[rng.Intn(len(words))], i+1),
			Author:  authors[rng.Intn(len(authors))],
			PubYear: 1950 + rng.Intn(75),
		})
	}
	return out
}
