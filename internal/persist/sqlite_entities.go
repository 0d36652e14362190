package persist

import (
	"github.com/kgrange/tempo/internal/models"
)

// Categories returns all of the user's categories, ordered by name.
func (db *SQLite) Categories(userID string) ([]models.Category, error) {
	rows, err := db.Query(`
		SELECT id, name, color FROM categories WHERE user_id = ? ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertCategory stores a new category for the user.
func (db *SQLite) InsertCategory(userID string, c models.Category) error {
	_, err := db.Exec(`
		INSERT INTO categories (id, user_id, name, color) VALUES (?, ?, ?, ?)
	`, c.ID, userID, c.Name, c.Color)
	return err
}

// UpdateCategory updates a category's name and color.
func (db *SQLite) UpdateCategory(c models.Category) error {
	_, err := db.Exec(`
		UPDATE categories SET name = ?, color = ? WHERE id = ?
	`, c.Name, c.Color, c.ID)
	return err
}

// DeleteCategory deletes a category.
func (db *SQLite) DeleteCategory(id string) error {
	_, err := db.Exec("DELETE FROM categories WHERE id = ?", id)
	return err
}

// Tags returns all of the user's tags, ordered by name.
func (db *SQLite) Tags(userID string) ([]models.Tag, error) {
	rows, err := db.Query(`
		SELECT id, name FROM tags WHERE user_id = ? ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// InsertTag stores a new tag for the user.
func (db *SQLite) InsertTag(userID string, t models.Tag) error {
	_, err := db.Exec(`
		INSERT INTO tags (id, user_id, name) VALUES (?, ?, ?)
	`, t.ID, userID, t.Name)
	return err
}

// DeleteTag deletes a tag and, through the link table's foreign key,
// its task associations.
func (db *SQLite) DeleteTag(id string) error {
	_, err := db.Exec("DELETE FROM tags WHERE id = ?", id)
	return err
}
