package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TxTimeout bounds each command's unit of work. LockTimeout and
	// StatementTimeout are applied inside the transaction; zero keeps the
	// server default.
	TxTimeout        time.Duration
	LockTimeout      time.Duration
	StatementTimeout time.Duration

	ReconciliationSchedule string
	ReconciliationTimeout  time.Duration
}
