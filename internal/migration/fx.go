package migration

import (
	"github.com/classon/server/internal/config"
	customerdomain "github.com/classon/server/internal/customer/domain"
	ebookdomain "github.com/classon/server/internal/ebook/domain"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	orderdomain "github.com/classon/server/internal/order/domain"
	productdomain "github.com/classon/server/internal/product/domain"
	userdomain "github.com/classon/server/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql are development conveniences; their schema is
		// derived from the models.
		return conn.AutoMigrate(
			&instructordomain.Instructor{},
			&userdomain.User{},
			&customerdomain.Customer{},
			&productdomain.Product{},
			&orderdomain.Order{},
			&ebookdomain.Chapter{},
			&ebookdomain.Section{},
			&ebookdomain.Progress{},
			&ebookdomain.Bookmark{},
		)
	}),
)
