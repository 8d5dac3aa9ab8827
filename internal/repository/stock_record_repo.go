package repository

import (
	"time"

	"honesty-store-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRecordRepository interface {
	FindByDate(date time.Time) ([]model.StockRecord, error)
	FindByProductAndDateTx(tx *gorm.DB, productID uuid.UUID, date time.Time) (*model.StockRecord, error)
	UpsertTx(tx *gorm.DB, record *model.StockRecord) error
	GetDailyMovement(startDate, endDate time.Time) ([]DailyMovementData, error)
	GetDashboardStats(lowStockThreshold int, today time.Time) (*DashboardStats, error)
}

// DailyMovementData feeds the admin dashboard chart.
type DailyMovementData struct {
	Date   string `json:"date"`
	Sold   int    `json:"sold"`
	Wasted int    `json:"wasted"`
	Stolen int    `json:"stolen"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalProducts    int64           `json:"total_products"`
	LowStockCount    int64           `json:"low_stock_count"`
	StockValuation   decimal.Decimal `json:"stock_valuation"`
	TodaySales       decimal.Decimal `json:"today_sales"`
	TodayStolenUnits int64           `json:"today_stolen_units"`
}

type stockRecordRepo struct {
	db *gorm.DB
}

func NewStockRecordRepo(db *gorm.DB) StockRecordRepository {
	return &stockRecordRepo{db}
}

// dayBounds returns the inclusive start and end of the calendar day.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

func (r *stockRecordRepo) FindByDate(date time.Time) ([]model.StockRecord, error) {
	start, end := dayBounds(date)
	var records []model.StockRecord
	err := r.db.Where("record_date BETWEEN ? AND ?", start, end).Find(&records).Error
	return records, err
}

// FindByProductAndDateTx looks up the persisted row for one product on one
// calendar day inside the caller's tx. Returns (nil, nil) when no row exists.
func (r *stockRecordRepo) FindByProductAndDateTx(tx *gorm.DB, productID uuid.UUID, date time.Time) (*model.StockRecord, error) {
	start, end := dayBounds(date)

	var record model.StockRecord
	err := tx.Where("product_id = ? AND record_date BETWEEN ? AND ?", productID, start, end).
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertTx writes one reconciliation row inside the caller's tx: updates
// when the record carries an id, inserts otherwise. The last save for a
// date wins in full.
func (r *stockRecordRepo) UpsertTx(tx *gorm.DB, record *model.StockRecord) error {
	if record.ID == uuid.Nil {
		return tx.Create(record).Error
	}
	return tx.Save(record).Error
}

func (r *stockRecordRepo) GetDailyMovement(startDate, endDate time.Time) ([]DailyMovementData, error) {
	var results []DailyMovementData

	rows, err := r.db.Model(&model.StockRecord{}).
		Select(`
			DATE(record_date) as date,
			COALESCE(SUM(order_count), 0) as sold,
			COALESCE(SUM(wastage_stock), 0) as wasted,
			COALESCE(SUM(stolen_stock), 0) as stolen
		`).
		Where("record_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(record_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyMovementData
		if err := rows.Scan(&data.Date, &data.Sold, &data.Wasted, &data.Stolen); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *stockRecordRepo) GetDashboardStats(lowStockThreshold int, today time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Where("archived = ?", false).Count(&stats.TotalProducts)

	r.db.Model(&model.Product{}).
		Where("archived = ? AND stock <= ?", false, lowStockThreshold).
		Count(&stats.LowStockCount)

	r.db.Model(&model.Product{}).
		Where("archived = ?", false).
		Select("COALESCE(SUM(stock * unit_price), 0)").
		Scan(&stats.StockValuation)

	start, end := dayBounds(today)
	r.db.Model(&model.StockRecord{}).
		Where("record_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(sales), 0)").
		Scan(&stats.TodaySales)

	r.db.Model(&model.StockRecord{}).
		Where("record_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(stolen_stock), 0)").
		Scan(&stats.TodayStolenUnits)

	return &stats, nil
}
