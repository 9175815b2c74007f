package refdata

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"main/internal/model"
	"main/internal/model/enum"
)

const (
	defaultPostgresHost    = "localhost"
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"
)

// PGOption defines connection options for a PostgreSQL reference-data source.
type PGOption struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	Params     map[string]string
	ConnString string
	Config     *gorm.Config
}

type bondRow struct {
	ProductID string    `gorm:"column:product_id;primaryKey"`
	IDType    string    `gorm:"column:id_type"`
	Ticker    string    `gorm:"column:ticker"`
	Coupon    float64   `gorm:"column:coupon"`
	Maturity  time.Time `gorm:"column:maturity"`
}

func (bondRow) TableName() string { return "bonds" }

// LoadFromPostgres reads the bond reference table and fills the service.
// The database is an ingress collaborator only; nothing is written back.
func LoadFromPostgres(svc *Service, opt PGOption) (int, error) {
	connString, err := opt.dsn()
	if err != nil {
		return 0, err
	}

	config := opt.Config
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(postgres.Open(connString), config)
	if err != nil {
		return 0, err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var rows []bondRow
	if err := db.Find(&rows).Error; err != nil {
		return 0, err
	}

	for _, row := range rows {
		svc.Add(model.Bond{
			ID:       row.ProductID,
			IDType:   enum.ParseIDType(row.IDType),
			Ticker:   row.Ticker,
			Coupon:   row.Coupon,
			Maturity: row.Maturity,
		})
	}
	return len(rows), nil
}

func (opt PGOption) dsn() (string, error) {
	if opt.ConnString != "" {
		return opt.ConnString, nil
	}

	host := opt.Host
	if host == "" {
		host = defaultPostgresHost
	}

	port := opt.Port
	if port == 0 {
		port = defaultPostgresPort
	}

	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}

	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}

	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	for key, value := range opt.Params {
		if key == "" {
			continue
		}
		query.Set(key, value)
	}
	if len(query) != 0 {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}
