// Package postgresdb provides a PostgreSQL-based implementation of the storage
// interface for persisting and retrieving users and courses.
// The schema is managed with goose migrations applied at startup.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

// PostgresDB is a PostgreSQL-backed implementation of the application storage.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
) (*PostgresDB, error) {
	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	return result, nil
}

// FindUserByEmail fetches the user whose email address exactly matches the
// given identifier. The second return value reports whether a row was found.
func (db *PostgresDB) FindUserByEmail(ctx context.Context, emailAddress string) (*user.User, bool, error) {
	row := db.database.QueryRowContext(
		ctx,
		`SELECT id, first_name, last_name, email_address, password FROM users WHERE email_address = $1`,
		emailAddress,
	)

	usr := &user.User{}
	err := row.Scan(&usr.ID, &usr.FirstName, &usr.LastName, &usr.EmailAddress, &usr.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return usr, true, nil
}

// CreateUser inserts a new user record and returns the generated id.
// Email uniqueness is enforced by the table constraint, not here.
func (db *PostgresDB) CreateUser(ctx context.Context, usr *user.User) (int, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			INSERT INTO users (first_name, last_name, email_address, password)
				VALUES ($1, $2, $3, $4)
				RETURNING id
		`,
		usr.FirstName,
		usr.LastName,
		usr.EmailAddress,
		usr.PasswordHash,
	)

	var userID int
	if err := row.Scan(&userID); err != nil {
		return 0, err
	}

	return userID, nil
}

const courseWithOwnerColumns = `
	courses.id,
	courses.title,
	courses.description,
	courses.estimated_time,
	courses.materials_needed,
	courses.user_id,
	users.id,
	users.first_name,
	users.last_name,
	users.email_address
`

func scanCourseWithOwner(row interface{ Scan(...any) error }) (models.CourseWithOwner, error) {
	course := models.CourseWithOwner{}
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.EstimatedTime,
		&course.MaterialsNeeded,
		&course.UserID,
		&course.Owner.ID,
		&course.Owner.FirstName,
		&course.Owner.LastName,
		&course.Owner.EmailAddress,
	)
	return course, err
}

// ListCourses returns all courses joined with their owning users, ordered by id.
func (db *PostgresDB) ListCourses(ctx context.Context) ([]models.CourseWithOwner, error) {
	rows, err := db.database.QueryContext(
		ctx,
		fmt.Sprintf(
			`
				SELECT %s
					FROM courses
						JOIN users ON users.id = courses.user_id
					ORDER BY courses.id
			`,
			courseWithOwnerColumns,
		),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.CourseWithOwner{}
	for rows.Next() {
		course, err := scanCourseWithOwner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetCourse fetches one course by id together with its owning user.
// The second return value reports whether the course exists.
func (db *PostgresDB) GetCourse(ctx context.Context, courseID int) (*models.CourseWithOwner, bool, error) {
	row := db.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`
				SELECT %s
					FROM courses
						JOIN users ON users.id = courses.user_id
					WHERE courses.id = $1
			`,
			courseWithOwnerColumns,
		),
		courseID,
	)

	course, err := scanCourseWithOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &course, true, nil
}

// CreateCourse inserts a new course record and returns the generated id.
func (db *PostgresDB) CreateCourse(ctx context.Context, course *models.Course) (int, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			INSERT INTO courses (title, description, estimated_time, materials_needed, user_id)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
		`,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UserID,
	)

	var courseID int
	if err := row.Scan(&courseID); err != nil {
		return 0, err
	}

	return courseID, nil
}

// UpdateCourse overwrites the course with the given id, including its owner
// reference. The first return value reports whether a row was updated.
func (db *PostgresDB) UpdateCourse(ctx context.Context, course *models.Course) (bool, error) {
	result, err := db.database.ExecContext(
		ctx,
		`
			UPDATE courses
				SET title = $1,
					description = $2,
					estimated_time = $3,
					materials_needed = $4,
					user_id = $5
				WHERE id = $6
		`,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UserID,
		course.ID,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// DeleteCourse removes the course with the given id. Deleting an id that does
// not exist is not an error.
func (db *PostgresDB) DeleteCourse(ctx context.Context, courseID int) error {
	_, err := db.database.ExecContext(
		ctx,
		`DELETE FROM courses WHERE id = $1`,
		courseID,
	)

	return err
}

// Ping verifies connectivity with the PostgreSQL database within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	return db.database.Close()
}
