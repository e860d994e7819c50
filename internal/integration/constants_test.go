package integration_test

const (
	// User related constants
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	// Movie related constants, served by the catalog stub
	TestMovieId       = 603
	TestMovieTitle    = "The Matrix"
	TestMovieOverview = "A computer hacker learns about the true nature of reality."
	TestMoviePoster   = "/matrix.jpg"
	TestMovieRelease  = "1999-03-31"
	TestMovieRating   = 8.2

	TestMovieId2    = 27205
	TestMovieTitle2 = "Inception"
)
