package seeders

import (
	"math/rand"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/db/fakers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	productsPerCategory = 6
	promotionCount      = 3
	ratingsPerProduct   = 3
)

var categoryTree = []struct {
	Name     string
	Children []string
}{
	{Name: "Hoa tươi", Children: []string{"Hoa hồng", "Hoa tulip", "Hoa lan"}},
	{Name: "Hoa sự kiện", Children: []string{"Hoa cưới", "Hoa khai trương", "Hoa chia buồn"}},
	{Name: "Giỏ quà"},
}

// DBSeed fills an empty database with a browsable flower catalog. All rows
// are written in one transaction.
func DBSeed(db *gorm.DB, log logrus.FieldLogger) error {
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		admin := fakers.UserFaker(models.RoleAdmin)
		admin.Email = "admin@bloomie.local"
		if err := tx.Where("email = ?", admin.Email).FirstOrCreate(admin).Error; err != nil {
			return err
		}
		log.Infof("DBSeed: admin user %s (%s)", admin.ID, admin.Email)

		styles := []*models.Style{
			fakers.StyleFaker("Cổ điển", "style-classic"),
			fakers.StyleFaker("Hiện đại", "style-modern"),
			fakers.StyleFaker("Mộc mạc", "style-rustic"),
		}
		for _, s := range styles {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}

		var products []models.Product
		for _, node := range categoryTree {
			parent := fakers.CategoryFaker(node.Name, nil)
			if err := tx.Create(parent).Error; err != nil {
				return err
			}
			leaves := []*models.Category{parent}
			for _, childName := range node.Children {
				child := fakers.CategoryFaker(childName, parent)
				if err := tx.Create(child).Error; err != nil {
					return err
				}
				leaves = append(leaves, child)
			}

			for _, category := range leaves {
				for i := 0; i < productsPerCategory; i++ {
					product := fakers.ProductFaker(category, styles[rand.Intn(len(styles))])
					if err := tx.Create(product).Error; err != nil {
						return err
					}
					products = append(products, *product)
				}
			}
		}

		for _, p := range products {
			for i := 0; i < rand.Intn(ratingsPerProduct+1); i++ {
				if err := tx.Create(fakers.RatingFaker(p.ID)).Error; err != nil {
					return err
				}
			}
		}

		for i := 0; i < promotionCount && len(products) > 0; i++ {
			covered := make([]models.Product, 0, 4)
			for _, idx := range rand.Perm(len(products))[:min(4, len(products))] {
				covered = append(covered, products[idx])
			}
			if err := tx.Create(fakers.PromotionFaker(covered, now)).Error; err != nil {
				return err
			}
		}

		log.WithFields(logrus.Fields{"products": len(products), "promotions": promotionCount}).Info("DBSeed: catalog seeded")
		return nil
	})
}
