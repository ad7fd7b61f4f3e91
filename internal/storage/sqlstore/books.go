package sqlstore

import (
	"github.com/aanand-mishra/booknest-api/internal/types"
)

const bookColumns = "id, title, isbn, price, publication_year, stock, author_name, category"

func scanBook(row scanner) (types.Book, error) {
	var b types.Book
	err := row.Scan(&b.ID, &b.Title, &b.ISBN, &b.Price, &b.PublicationYear,
		&b.Stock, &b.AuthorName, &b.Category)
	return b, err
}

func (s *Store) CreateBook(book types.Book) (int64, error) {
	return s.insert("CreateBook",
		`INSERT INTO books (title, isbn, price, publication_year, stock, author_name, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		book.Title, book.ISBN, book.Price, book.PublicationYear,
		book.Stock, book.AuthorName, book.Category)
}

func (s *Store) GetBookByID(id int64) (types.Book, error) {
	return queryOne(s, "GetBookByID",
		"SELECT "+bookColumns+" FROM books WHERE id = ? LIMIT 1",
		scanBook, id)
}

func (s *Store) GetBooks() ([]types.Book, error) {
	return queryAll(s, "GetBooks",
		"SELECT "+bookColumns+" FROM books ORDER BY id",
		scanBook)
}

func (s *Store) SearchBooks(title string) ([]types.Book, error) {
	return queryAll(s, "SearchBooks",
		"SELECT "+bookColumns+" FROM books WHERE title LIKE ? ESCAPE '!' ORDER BY id",
		scanBook, likePattern(title))
}

func (s *Store) UpdateBookByID(id int64, book types.Book) error {
	return s.exec("UpdateBookByID",
		`UPDATE books SET title = ?, isbn = ?, price = ?, publication_year = ?,
		 stock = ?, author_name = ?, category = ? WHERE id = ?`,
		book.Title, book.ISBN, book.Price, book.PublicationYear,
		book.Stock, book.AuthorName, book.Category, id)
}

func (s *Store) DeleteBookByID(id int64) error {
	return s.exec("DeleteBookByID", "DELETE FROM books WHERE id = ?", id)
}
