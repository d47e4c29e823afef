// Package session implements the actions a movieshelf front end offers on a
// collection: adding, editing and deleting movies, saving and loading files,
// and opening or closing a session.
//
// Front ends never touch the collection or the adapters directly. Each
// action returns a Result carrying a display message and, on failure, the
// classified error:
//
//	s := session.New(collection.New(), format.DefaultRegistry(format.Options{}))
//	s.NewSession()
//
//	_, res := s.OnAdd("Inception", "2010", "Sci-Fi")
//	fmt.Println(res.Message) // Movie added: Inception
//
//	res = s.OnSave(ctx, format.FormatCSV, "movies.csv")
//	fmt.Println(res.Message) // Movie data saved as CSV!
//
// A failed action never changes the collection.
package session
