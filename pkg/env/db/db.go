package db

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/app-sre/fabi/pkg/env"
)

// DBEnv carries the connection details of the prediction history
// database. The database is optional: the service only consults this
// configuration when DB_DRIVER is set.
type DBEnv struct {
	Driver     DriverType
	Host       string
	Port       int
	Username   string
	Password   string
	Name       string
	AllowWrite bool
}

func NewDBEnv() *DBEnv {
	return &DBEnv{}
}

func (d *DBEnv) Populate() error {
	driver, found := os.LookupEnv("DB_DRIVER")
	if !found || driver == "" {
		return &env.Error{Name: "DB_DRIVER"}
	}
	d.Driver = DriverType(driver)

	if !d.Driver.IsValid() {
		return fmt.Errorf("unable to use driver type: %s", driver)
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return &env.Error{Name: "DB_HOST"}
	}
	d.Host = host

	d.Port = d.Driver.Port()
	if s := os.Getenv("DB_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return &env.TypeError{Name: "DB_PORT"}
		}
		d.Port = port
	}

	username := os.Getenv("DB_USER")
	if username == "" {
		return &env.Error{Name: "DB_USER"}
	}
	d.Username = username

	password := os.Getenv("DB_PASS")
	if password == "" {
		return &env.Error{Name: "DB_PASS"}
	}
	d.Password = password

	name := os.Getenv("DB_NAME")
	if name == "" {
		return &env.Error{Name: "DB_NAME"}
	}
	d.Name = name

	if s := os.Getenv("DB_WRITE"); s != "" {
		write, err := strconv.ParseBool(s)
		if err != nil {
			return &env.TypeError{Name: "DB_WRITE"}
		}
		d.AllowWrite = write
	}

	return nil
}

// ConnectionDSN renders the driver-specific data source name. Reserved
// characters in the password are escaped for PostgreSQL, where the DSN
// is a URL. The MySQL DSN format takes the password verbatim.
func (d *DBEnv) ConnectionDSN() string {
	switch d.Driver.Name() {
	case postgresDriver:
		aux := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.Username, d.Password),
			Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
			Path:   d.Name,
		}
		return aux.String()
	case mysqlDriver:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", d.Username, d.Password, d.Host, d.Port, d.Name)
	default:
		return ""
	}
}
