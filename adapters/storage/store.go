// Package storage provides a Postgres-backed rate catalog store.
//
// The store implements catalog.Reader by pushing the table-level
// filters (scope, service, interval intersection, booking window,
// contract code) and the lookup ordering into SQL; row-level match
// keys stay with the resolver, exactly as with the in-memory store.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tourcost/core/catalog"
	"tourcost/core/types"
	"tourcost/internal/errors"
)

// Store is a catalog.Reader backed by Postgres
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and prepares the schema
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Storage("failed to connect to catalog database", err)
	}

	if err := db.AutoMigrate(&rateTableModel{}, &rateDetailModel{}); err != nil {
		return nil, errors.Storage("failed to migrate catalog schema", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm connection
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Lookup implements catalog.Reader
func (s *Store) Lookup(ctx context.Context, q catalog.Query) ([]catalog.Row, error) {
	query := s.db.WithContext(ctx).
		Preload("Details").
		Where("scope_kind = ? AND party_id = ? AND service_id = ?", string(q.Scope.Kind), q.Scope.PartyID, q.ServiceID).
		Where("date_from <= ? AND date_to >= ?", q.Dates.To, q.Dates.From).
		Where("date_from <= date_to").
		Where("contract_code = ?", q.ContractCode)

	if q.BookedOn != nil {
		day := types.ToDay(*q.BookedOn)
		query = query.Where("(booked_from IS NULL AND booked_to IS NULL) OR (booked_from <= ? AND booked_to >= ?)", day, day)
	}

	var models []rateTableModel
	if err := query.Order("date_from ASC, date_to DESC").Find(&models).Error; err != nil {
		return nil, errors.Storage("catalog lookup failed", err)
	}

	var rows []catalog.Row
	for i := range models {
		table := toDomainTable(&models[i])
		for _, d := range table.Details {
			rows = append(rows, catalog.Row{Detail: d, Table: table})
		}
	}
	return rows, nil
}

// SaveTable inserts a rate table with its detail rows, assigning ids
// where missing. Catalog maintenance is external; this exists for
// seeding and for the reseller-copy jobs that feed the store.
func (s *Store) SaveTable(ctx context.Context, table *types.RateTable) error {
	if table.Dates.Empty() {
		return errors.Newf(errors.TypeStorage, "rate table for %s has an empty date interval", table.ServiceID)
	}
	model := toTableModel(table)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Storage("failed to save rate table", err)
	}
	table.ID = model.ID
	return nil
}

// rateTableModel is the persistence shape of a rate table
type rateTableModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	ScopeKind    string     `gorm:"column:scope_kind;index:idx_rate_tables_lookup"`
	PartyID      string     `gorm:"column:party_id;index:idx_rate_tables_lookup"`
	ServiceID    string     `gorm:"column:service_id;index:idx_rate_tables_lookup"`
	DateFrom     time.Time  `gorm:"column:date_from"`
	DateTo       time.Time  `gorm:"column:date_to"`
	BookedFrom   *time.Time `gorm:"column:booked_from"`
	BookedTo     *time.Time `gorm:"column:booked_to"`
	ContractCode string     `gorm:"column:contract_code"`

	Details []rateDetailModel `gorm:"foreignKey:RateTableID"`
}

func (rateTableModel) TableName() string { return "rate_tables" }

// rateDetailModel is the persistence shape of a rate row. The amount
// cells are nullable columns named after the catalog cells.
type rateDetailModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	RateTableID   string `gorm:"column:rate_table_id;index"`
	RoomType      string `gorm:"column:room_type"`
	BoardType     string `gorm:"column:board_type"`
	Origin        string `gorm:"column:origin"`
	Destination   string `gorm:"column:destination"`
	NotReversible bool   `gorm:"column:not_reversible"`
	AddonID       string `gorm:"column:addon_id"`
	HasPaxRange   bool   `gorm:"column:has_pax_range"`
	PaxMin        int    `gorm:"column:pax_min"`
	PaxMax        int    `gorm:"column:pax_max"`

	Ad1 decimal.NullDecimal `gorm:"column:ad_1;type:decimal(12,2)"`
	Ad2 decimal.NullDecimal `gorm:"column:ad_2;type:decimal(12,2)"`
	Ad3 decimal.NullDecimal `gorm:"column:ad_3;type:decimal(12,2)"`
	Ad4 decimal.NullDecimal `gorm:"column:ad_4;type:decimal(12,2)"`

	Ch1Ad0 decimal.NullDecimal `gorm:"column:ch_1_ad_0;type:decimal(12,2)"`
	Ch1Ad1 decimal.NullDecimal `gorm:"column:ch_1_ad_1;type:decimal(12,2)"`
	Ch1Ad2 decimal.NullDecimal `gorm:"column:ch_1_ad_2;type:decimal(12,2)"`
	Ch1Ad3 decimal.NullDecimal `gorm:"column:ch_1_ad_3;type:decimal(12,2)"`
	Ch1Ad4 decimal.NullDecimal `gorm:"column:ch_1_ad_4;type:decimal(12,2)"`
	Ch2Ad0 decimal.NullDecimal `gorm:"column:ch_2_ad_0;type:decimal(12,2)"`
	Ch2Ad1 decimal.NullDecimal `gorm:"column:ch_2_ad_1;type:decimal(12,2)"`
	Ch2Ad2 decimal.NullDecimal `gorm:"column:ch_2_ad_2;type:decimal(12,2)"`
	Ch2Ad3 decimal.NullDecimal `gorm:"column:ch_2_ad_3;type:decimal(12,2)"`
	Ch2Ad4 decimal.NullDecimal `gorm:"column:ch_2_ad_4;type:decimal(12,2)"`
	Ch3Ad0 decimal.NullDecimal `gorm:"column:ch_3_ad_0;type:decimal(12,2)"`
	Ch3Ad1 decimal.NullDecimal `gorm:"column:ch_3_ad_1;type:decimal(12,2)"`
	Ch3Ad2 decimal.NullDecimal `gorm:"column:ch_3_ad_2;type:decimal(12,2)"`
	Ch3Ad3 decimal.NullDecimal `gorm:"column:ch_3_ad_3;type:decimal(12,2)"`
	Ch3Ad4 decimal.NullDecimal `gorm:"column:ch_3_ad_4;type:decimal(12,2)"`

	ChildDiscountPercent decimal.NullDecimal `gorm:"column:child_discount_percent;type:decimal(5,2)"`
}

func (rateDetailModel) TableName() string { return "rate_details" }

func toDomainTable(m *rateTableModel) *types.RateTable {
	table := &types.RateTable{
		ID:           m.ID,
		Scope:        types.Scope{Kind: types.ScopeKind(m.ScopeKind), PartyID: m.PartyID},
		ServiceID:    m.ServiceID,
		Dates:        types.NewDateRange(m.DateFrom, m.DateTo),
		ContractCode: m.ContractCode,
	}
	if m.BookedFrom != nil && m.BookedTo != nil {
		table.BookingWindow = &types.BookingWindow{From: *m.BookedFrom, To: *m.BookedTo}
	}
	for i := range m.Details {
		table.Details = append(table.Details, toDomainDetail(&m.Details[i]))
	}
	return table
}

func toDomainDetail(m *rateDetailModel) *types.RateDetail {
	detail := &types.RateDetail{
		ID:                   m.ID,
		RoomType:             m.RoomType,
		BoardType:            m.BoardType,
		Origin:               m.Origin,
		Destination:          m.Destination,
		NotReversible:        m.NotReversible,
		AddonID:              m.AddonID,
		ChildDiscountPercent: toAmount(m.ChildDiscountPercent),
	}
	if m.HasPaxRange {
		detail.PaxRange = &types.PaxRange{Min: m.PaxMin, Max: m.PaxMax}
	}

	adults := []decimal.NullDecimal{m.Ad1, m.Ad2, m.Ad3, m.Ad4}
	for i, cell := range adults {
		detail.AdultAmounts[i] = toAmount(cell)
	}
	children := [3][5]decimal.NullDecimal{
		{m.Ch1Ad0, m.Ch1Ad1, m.Ch1Ad2, m.Ch1Ad3, m.Ch1Ad4},
		{m.Ch2Ad0, m.Ch2Ad1, m.Ch2Ad2, m.Ch2Ad3, m.Ch2Ad4},
		{m.Ch3Ad0, m.Ch3Ad1, m.Ch3Ad2, m.Ch3Ad3, m.Ch3Ad4},
	}
	for c := range children {
		for a := range children[c] {
			detail.ChildAmounts[c][a] = toAmount(children[c][a])
		}
	}
	return detail
}

func toTableModel(table *types.RateTable) *rateTableModel {
	m := &rateTableModel{
		ID:           table.ID,
		ScopeKind:    string(table.Scope.Kind),
		PartyID:      table.Scope.PartyID,
		ServiceID:    table.ServiceID,
		DateFrom:     table.Dates.From,
		DateTo:       table.Dates.To,
		ContractCode: table.ContractCode,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if table.BookingWindow != nil {
		from, to := table.BookingWindow.From, table.BookingWindow.To
		m.BookedFrom, m.BookedTo = &from, &to
	}
	for _, d := range table.Details {
		m.Details = append(m.Details, *toDetailModel(d, m.ID))
	}
	return m
}

func toDetailModel(d *types.RateDetail, tableID string) *rateDetailModel {
	m := &rateDetailModel{
		ID:                   d.ID,
		RateTableID:          tableID,
		RoomType:             d.RoomType,
		BoardType:            d.BoardType,
		Origin:               d.Origin,
		Destination:          d.Destination,
		NotReversible:        d.NotReversible,
		AddonID:              d.AddonID,
		ChildDiscountPercent: toNullDecimal(d.ChildDiscountPercent),
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if d.PaxRange != nil {
		m.HasPaxRange = true
		m.PaxMin, m.PaxMax = d.PaxRange.Min, d.PaxRange.Max
	}

	m.Ad1 = toNullDecimal(d.AdultAmounts[0])
	m.Ad2 = toNullDecimal(d.AdultAmounts[1])
	m.Ad3 = toNullDecimal(d.AdultAmounts[2])
	m.Ad4 = toNullDecimal(d.AdultAmounts[3])

	cells := []*decimal.NullDecimal{
		&m.Ch1Ad0, &m.Ch1Ad1, &m.Ch1Ad2, &m.Ch1Ad3, &m.Ch1Ad4,
		&m.Ch2Ad0, &m.Ch2Ad1, &m.Ch2Ad2, &m.Ch2Ad3, &m.Ch2Ad4,
		&m.Ch3Ad0, &m.Ch3Ad1, &m.Ch3Ad2, &m.Ch3Ad3, &m.Ch3Ad4,
	}
	for c := 0; c < 3; c++ {
		for a := 0; a < 5; a++ {
			*cells[c*5+a] = toNullDecimal(d.ChildAmounts[c][a])
		}
	}
	return m
}

func toAmount(cell decimal.NullDecimal) types.Amount {
	if !cell.Valid {
		return types.NoAmount()
	}
	return types.NewAmount(cell.Decimal)
}

func toNullDecimal(a types.Amount) decimal.NullDecimal {
	if !a.Valid() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: a.Decimal(), Valid: true}
}
