package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/ashendes/catalog-service/internal/config"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CatalogTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.Store
	svc   *Service
	now   time.Time
}

func (s *CatalogTestSuite) SetupTest() {
	st, err := store.Open(config.DatabaseConfig{
		URL:            "sqlite://:memory:",
		MaxSessions:    1,
		AcquireTimeout: time.Second,
	})
	s.Require().NoError(err)
	s.ctx = context.Background()
	s.Require().NoError(st.Migrate(s.ctx))

	s.now = time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)
	s.store = st
	s.svc = NewService(st,
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *CatalogTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *CatalogTestSuite) newProduct(name string, price float64) models.ProductResponse {
	cat, err := s.svc.CreateCategory(s.ctx, models.CategoryCreate{Name: name + " category"})
	s.Require().NoError(err)
	brand, err := s.svc.CreateBrand(s.ctx, models.BrandCreate{Name: name + " brand"})
	s.Require().NoError(err)
	p, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:       name,
		Price:      price,
		CategoryID: cat.ID,
		BrandID:    brand.ID,
	})
	s.Require().NoError(err)
	return p
}

func (s *CatalogTestSuite) newOrder(email string) models.OrderResponse {
	u, err := s.svc.CreateUser(s.ctx, models.UserCreate{Email: email, Password: "securepassword"})
	s.Require().NoError(err)
	o, err := s.svc.CreateOrder(s.ctx, models.OrderCreate{UserID: u.ID, Status: models.OrderStatusPending})
	s.Require().NoError(err)
	return o
}

func (s *CatalogTestSuite) countRows(model interface{}) int64 {
	var n int64
	err := s.store.Session(s.ctx, func(tx *gorm.DB) error {
		return tx.Model(model).Count(&n).Error
	})
	s.Require().NoError(err)
	return n
}

func (s *CatalogTestSuite) TestCreateProductRoundsPriceAndLoadsRelations() {
	p := s.newProduct("Laptop", 99.999)

	s.Equal(100.0, p.Price)
	s.True(p.InStock)
	s.Equal(p.CategoryID, p.Category.ID)
	s.Equal("Laptop category", p.Category.Name)
	s.Equal("Laptop brand", p.Brand.Name)

	brand, err := s.svc.GetBrand(s.ctx, p.BrandID)
	s.Require().NoError(err)
	s.Require().Len(brand.Products, 1)
	s.Equal(p.ID, brand.Products[0].ID)
}

func (s *CatalogTestSuite) TestCreateProductDuplicateName() {
	p := s.newProduct("Laptop", 10)

	_, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:       "Laptop",
		Price:      20,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Contains(we.Error(), "Error creating product: ")
	s.Equal(int64(1), s.countRows(&models.Product{}))
}

func (s *CatalogTestSuite) TestCreateProductUnknownBrand() {
	p := s.newProduct("Laptop", 10)

	_, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:       "Tablet",
		Price:      20,
		CategoryID: p.CategoryID,
		BrandID:    999,
	})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Equal(int64(1), s.countRows(&models.Product{}))
}

func (s *CatalogTestSuite) TestPriceRoundingToZeroCreatesNothing() {
	p := s.newProduct("Laptop", 10)

	_, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:       "Sticker",
		Price:      0.004,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	})
	var fes models.FieldErrors
	s.Require().ErrorAs(err, &fes)
	s.Equal(int64(1), s.countRows(&models.Product{}))

	_, err = s.svc.UpdateProduct(s.ctx, p.ID, models.ProductCreate{
		Name:       "Laptop",
		Price:      0.001,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	})
	s.Require().ErrorAs(err, &fes)

	got, err := s.svc.GetProduct(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(10.0, got.Price)
}

func (s *CatalogTestSuite) TestWriteErrorReportsKind() {
	p := s.newProduct("Laptop", 10)

	_, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:       "Laptop",
		Price:      12,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Equal(we.Err.Kind, we.Kind())
	s.NotEmpty(we.Kind())
}

func (s *CatalogTestSuite) TestGetMissing() {
	_, err := s.svc.GetCategory(s.ctx, 99)
	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("Category with id=99 not found.", nf.Error())

	_, err = s.svc.GetOrderItem(s.ctx, 7)
	s.Require().ErrorAs(err, &nf)
	s.Equal("Order item with id=7 not found.", nf.Error())

	s.Require().ErrorAs(s.svc.DeleteBrand(s.ctx, 5), &nf)
	_, err = s.svc.PatchUser(s.ctx, 5, models.UserPatch{})
	s.Require().ErrorAs(err, &nf)
}

func (s *CatalogTestSuite) TestPatchProductOnlyChangesSentFields() {
	desc := "15 inch"
	cat, err := s.svc.CreateCategory(s.ctx, models.CategoryCreate{Name: "Computers"})
	s.Require().NoError(err)
	brand, err := s.svc.CreateBrand(s.ctx, models.BrandCreate{Name: "Acme"})
	s.Require().NoError(err)
	p, err := s.svc.CreateProduct(s.ctx, models.ProductCreate{
		Name:        "Laptop",
		Description: &desc,
		Price:       500,
		CategoryID:  cat.ID,
		BrandID:     brand.ID,
	})
	s.Require().NoError(err)

	patched, err := s.svc.PatchProduct(s.ctx, p.ID, models.ProductPatch{Price: models.Some(449.995)})
	s.Require().NoError(err)
	s.Equal(450.0, patched.Price)
	s.Equal("Laptop", patched.Name)
	s.Require().NotNil(patched.Description)
	s.Equal("15 inch", *patched.Description)

	cleared, err := s.svc.PatchProduct(s.ctx, p.ID, models.ProductPatch{Description: models.Null[string]()})
	s.Require().NoError(err)
	s.Nil(cleared.Description)
	s.Equal(450.0, cleared.Price)
}

func (s *CatalogTestSuite) TestPatchRejectsNullOnRequiredField() {
	p := s.newProduct("Laptop", 10)
	_, err := s.svc.PatchProduct(s.ctx, p.ID, models.ProductPatch{Name: models.Null[string]()})
	var fes models.FieldErrors
	s.Require().ErrorAs(err, &fes)
	s.Equal("name", fes[0].Field)
}

func (s *CatalogTestSuite) TestUpdateProductReplacesEveryField() {
	desc := "old"
	p := s.newProduct("Laptop", 10)
	_, err := s.svc.PatchProduct(s.ctx, p.ID, models.ProductPatch{
		Description: models.Some(desc),
		InStock:     models.Some(false),
	})
	s.Require().NoError(err)

	updated, err := s.svc.UpdateProduct(s.ctx, p.ID, models.ProductCreate{
		Name:       "Laptop Pro",
		Price:      12.345,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	})
	s.Require().NoError(err)
	s.Equal("Laptop Pro", updated.Name)
	s.Equal(12.35, updated.Price)
	s.Nil(updated.Description)
	s.True(updated.InStock)

	_, err = s.svc.UpdateProduct(s.ctx, 404, models.ProductCreate{Name: "x", Price: 1, CategoryID: 1, BrandID: 1})
	var nf *NotFoundError
	s.ErrorAs(err, &nf)
}

func (s *CatalogTestSuite) TestOrderItemSnapshotsUnitPrice() {
	p := s.newProduct("Laptop", 100)
	o := s.newOrder("buyer@example.com")

	item, err := s.svc.CreateOrderItem(s.ctx, models.OrderItemCreate{OrderID: o.ID, ProductID: p.ID})
	s.Require().NoError(err)
	s.Equal(100.0, item.UnitPrice)
	s.Equal(models.DefaultQuantity, item.Quantity)
	s.Equal(o.ID, item.Order.ID)
	s.Equal("Laptop", item.Product.Name)

	_, err = s.svc.PatchProduct(s.ctx, p.ID, models.ProductPatch{Price: models.Some(150.0)})
	s.Require().NoError(err)

	got, err := s.svc.GetOrderItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(100.0, got.UnitPrice)
	s.Equal(150.0, got.Product.Price)

	qty, err := s.svc.PatchOrderItem(s.ctx, item.ID, models.OrderItemPatch{Quantity: models.Some(3)})
	s.Require().NoError(err)
	s.Equal(3, qty.Quantity)
	s.Equal(100.0, qty.UnitPrice)
}

func (s *CatalogTestSuite) TestOrderTotalIsNotRecomputed() {
	p := s.newProduct("Laptop", 100)
	o := s.newOrder("buyer@example.com")
	s.Equal(0.0, o.TotalAmount)

	for i := 0; i < 2; i++ {
		_, err := s.svc.CreateOrderItem(s.ctx, models.OrderItemCreate{OrderID: o.ID, ProductID: p.ID})
		s.Require().NoError(err)
	}

	got, err := s.svc.GetOrder(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(0.0, got.TotalAmount)
	s.Len(got.Items, 2)
	s.Equal("buyer@example.com", got.User.Email)
}

func (s *CatalogTestSuite) TestOrderItemUnknownProduct() {
	o := s.newOrder("buyer@example.com")

	_, err := s.svc.CreateOrderItem(s.ctx, models.OrderItemCreate{OrderID: o.ID, ProductID: 999})
	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("Product with id=999 not found.", nf.Error())
	s.Equal(int64(0), s.countRows(&models.OrderItem{}))
}

func (s *CatalogTestSuite) TestOrderItemUnknownOrder() {
	p := s.newProduct("Laptop", 100)

	_, err := s.svc.CreateOrderItem(s.ctx, models.OrderItemCreate{OrderID: 999, ProductID: p.ID})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Equal(int64(0), s.countRows(&models.OrderItem{}))
}

func (s *CatalogTestSuite) TestCreateOrderStampsDate() {
	o := s.newOrder("buyer@example.com")
	s.True(o.OrderDate.Equal(s.now.Truncate(time.Microsecond)), "order_date %v", o.OrderDate)
	s.Equal(models.OrderStatusPending, o.Status)

	_, err := s.svc.CreateOrder(s.ctx, models.OrderCreate{UserID: 999, Status: models.OrderStatusPending})
	var we *WriteError
	s.ErrorAs(err, &we)
}

func (s *CatalogTestSuite) TestPatchOrder() {
	o := s.newOrder("buyer@example.com")
	addr := "1 Main St"

	patched, err := s.svc.PatchOrder(s.ctx, o.ID, models.OrderPatch{
		Status:          models.Some(models.OrderStatusShipped),
		ShippingAddress: models.Some(addr),
	})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusShipped, patched.Status)
	s.Require().NotNil(patched.ShippingAddress)
	s.Equal(addr, *patched.ShippingAddress)
	s.True(patched.OrderDate.Equal(o.OrderDate))
}

func (s *CatalogTestSuite) TestUserPasswordIsHashed() {
	u, err := s.svc.CreateUser(s.ctx, models.UserCreate{Email: "a@example.com", Password: "securepassword"})
	s.Require().NoError(err)
	s.Empty(u.Orders)

	stored := s.storedUser(u.ID)
	s.NotEqual("securepassword", stored.PasswordHash)
	s.True(CheckPassword(stored.PasswordHash, "securepassword"))
	s.False(CheckPassword(stored.PasswordHash, "wrongpassword"))

	_, err = s.svc.PatchUser(s.ctx, u.ID, models.UserPatch{Password: models.Some("anotherpassword")})
	s.Require().NoError(err)
	stored = s.storedUser(u.ID)
	s.True(CheckPassword(stored.PasswordHash, "anotherpassword"))

	first := "Ada"
	updated, err := s.svc.UpdateUser(s.ctx, u.ID, models.UserCreate{
		Email:     "new@example.com",
		Password:  "newpassword",
		FirstName: &first,
	})
	s.Require().NoError(err)
	s.Equal("new@example.com", updated.Email)
	s.Require().NotNil(updated.FirstName)
	s.Equal("Ada", *updated.FirstName)
	s.True(CheckPassword(s.storedUser(u.ID).PasswordHash, "newpassword"))
}

func (s *CatalogTestSuite) TestLongPasswordsAreNotTruncated() {
	long := "p"
	for len(long) < 100 {
		long += "p"
	}
	hash, err := s.svc.hashPassword(long)
	s.Require().NoError(err)
	s.True(CheckPassword(hash, long))
	s.False(CheckPassword(hash, long[:80]))
}

func (s *CatalogTestSuite) TestDuplicateEmail() {
	_, err := s.svc.CreateUser(s.ctx, models.UserCreate{Email: "a@example.com", Password: "securepassword"})
	s.Require().NoError(err)

	_, err = s.svc.CreateUser(s.ctx, models.UserCreate{Email: "a@example.com", Password: "securepassword"})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Contains(we.Error(), "Error creating user: ")
	s.Equal(int64(1), s.countRows(&models.User{}))
}

func (s *CatalogTestSuite) TestDeleteWithChildrenIsRejected() {
	p := s.newProduct("Laptop", 10)

	err := s.svc.DeleteCategory(s.ctx, p.CategoryID)
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Contains(we.Error(), "Error deleting category: ")

	_, err = s.svc.GetCategory(s.ctx, p.CategoryID)
	s.NoError(err)
}

func (s *CatalogTestSuite) TestDeleteThenGet() {
	brand, err := s.svc.CreateBrand(s.ctx, models.BrandCreate{Name: "Acme"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteBrand(s.ctx, brand.ID))

	_, err = s.svc.GetBrand(s.ctx, brand.ID)
	var nf *NotFoundError
	s.ErrorAs(err, &nf)
}

func (s *CatalogTestSuite) TestListsAreOrderedByID() {
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := s.svc.CreateCategory(s.ctx, models.CategoryCreate{Name: name})
		s.Require().NoError(err)
	}

	cats, err := s.svc.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(cats, 3)
	s.Equal("Zeta", cats[0].Name)
	s.Equal("Mid", cats[2].Name)
	s.NotNil(cats[0].Products)
}

func (s *CatalogTestSuite) TestPatchBrandDuplicateName() {
	_, err := s.svc.CreateBrand(s.ctx, models.BrandCreate{Name: "Acme"})
	s.Require().NoError(err)
	other, err := s.svc.CreateBrand(s.ctx, models.BrandCreate{Name: "Globex"})
	s.Require().NoError(err)

	_, err = s.svc.PatchBrand(s.ctx, other.ID, models.BrandPatch{Name: models.Some("Acme")})
	var we *WriteError
	s.Require().ErrorAs(err, &we)
	s.Contains(we.Error(), "Error updating brand: ")

	got, err := s.svc.GetBrand(s.ctx, other.ID)
	s.Require().NoError(err)
	s.Equal("Globex", got.Name)
}

func (s *CatalogTestSuite) storedUser(id uint) models.User {
	var u models.User
	err := s.store.Session(s.ctx, func(tx *gorm.DB) error {
		return store.GetByID(tx, &u, id)
	})
	s.Require().NoError(err)
	return u
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
