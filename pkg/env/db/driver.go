package db

const (
	mysqlDriver    = "mysql"
	postgresDriver = "pgx"

	mysqlPort    = 3306
	postgresPort = 5432
)

// DriverType is the user-facing database driver name, as set with the
// DB_DRIVER environment variable. PostgreSQL is accepted under several
// aliases, all resolving to the pgx driver.
type DriverType string

func (t DriverType) String() string {
	return t.Name()
}

// Name returns the registered database/sql driver name, or an empty
// string for unsupported drivers.
func (t DriverType) Name() string {
	switch t {
	case "mysql":
		return mysqlDriver
	case "postgres", "postgresql", "pgx":
		return postgresDriver
	default:
		return ""
	}
}

// Port returns the conventional server port for the driver.
func (t DriverType) Port() int {
	switch t.Name() {
	case mysqlDriver:
		return mysqlPort
	case postgresDriver:
		return postgresPort
	default:
		return 0
	}
}

func (t DriverType) IsValid() bool {
	return t.Name() != ""
}
