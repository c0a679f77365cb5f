package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				return pool, nil
			}
		}
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'customer')) DEFAULT 'customer'
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id SERIAL PRIMARY KEY,
		vehicle_name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('car', 'bike', 'van', 'SUV')),
		registration_number TEXT UNIQUE NOT NULL,
		daily_rent_price NUMERIC(10,2) NOT NULL CHECK (daily_rent_price > 0),
		availability_status TEXT NOT NULL CHECK (availability_status IN ('available', 'booked')) DEFAULT 'available'
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		customer_id INT NOT NULL REFERENCES users(id),
		vehicle_id INT NOT NULL REFERENCES vehicles(id),
		rent_start_date DATE NOT NULL,
		rent_end_date DATE NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('active', 'cancelled', 'returned')) DEFAULT 'active'
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings(customer_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_vehicle_id ON bookings(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
	`
	_, err := db.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}
