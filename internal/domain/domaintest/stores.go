package domaintest

import (
	"context"
	"sort"
	"time"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/core/id"
	"farmledger/internal/core/types"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/chickout"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/incident"
	"farmledger/internal/domain/payroll"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

// versionLedger mirrors the optimistic-locking contract of the postgres
// repositories: Update must present the version the record was read
// with, a successful update bumps the committed version and writes it
// back to the struct.
type versionLedger struct {
	committed map[id.ID]int
}

func newVersionLedger() versionLedger {
	return versionLedger{committed: make(map[id.ID]int)}
}

func (l versionLedger) create(rec *entity.BaseRecord) {
	l.committed[rec.ID] = rec.Version
}

func (l versionLedger) update(table string, rec *entity.BaseRecord) error {
	if rec.Version != l.committed[rec.ID] {
		return apperror.NewConcurrentModification(table, rec.ID)
	}
	l.committed[rec.ID]++
	rec.SetVersion(l.committed[rec.ID])
	return nil
}

// --- periods ---

// PeriodRepo is an in-memory period.Repository.
type PeriodRepo struct {
	items    map[id.ID]*period.Period
	versions versionLedger
}

// NewPeriodRepo creates an empty store.
func NewPeriodRepo() *PeriodRepo {
	return &PeriodRepo{items: make(map[id.ID]*period.Period), versions: newVersionLedger()}
}

func (r *PeriodRepo) Create(_ context.Context, p *period.Period) error {
	r.items[p.ID] = p
	r.versions.create(&p.BaseRecord)
	return nil
}

func (r *PeriodRepo) GetByID(_ context.Context, periodID id.ID) (*period.Period, error) {
	p, ok := r.items[periodID]
	if !ok {
		return nil, apperror.NewNotFound("period", periodID.String())
	}
	return p, nil
}

func (r *PeriodRepo) Update(_ context.Context, p *period.Period) error {
	if _, ok := r.items[p.ID]; !ok {
		return apperror.NewNotFound("period", p.ID.String())
	}
	if err := r.versions.update("periods", &p.BaseRecord); err != nil {
		return err
	}
	r.items[p.ID] = p
	return nil
}

func (r *PeriodRepo) List(_ context.Context, filter period.ListFilter) ([]*period.Period, error) {
	var out []*period.Period
	for _, p := range r.items {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// --- sections ---

// SectionRepo is an in-memory section.Repository.
type SectionRepo struct {
	items    map[id.ID]*section.Section
	versions versionLedger
}

// NewSectionRepo creates an empty store.
func NewSectionRepo() *SectionRepo {
	return &SectionRepo{items: make(map[id.ID]*section.Section), versions: newVersionLedger()}
}

func (r *SectionRepo) Create(_ context.Context, s *section.Section) error {
	r.items[s.ID] = s
	r.versions.create(&s.BaseRecord)
	return nil
}

func (r *SectionRepo) GetByID(_ context.Context, sectionID id.ID) (*section.Section, error) {
	s, ok := r.items[sectionID]
	if !ok {
		return nil, apperror.NewNotFound("section", sectionID.String())
	}
	return s, nil
}

func (r *SectionRepo) Update(_ context.Context, s *section.Section) error {
	if _, ok := r.items[s.ID]; !ok {
		return apperror.NewNotFound("section", s.ID.String())
	}
	if err := r.versions.update("sections", &s.BaseRecord); err != nil {
		return err
	}
	r.items[s.ID] = s
	return nil
}

func (r *SectionRepo) List(_ context.Context) ([]*section.Section, error) {
	var out []*section.Section
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SectionRepo) ListByPeriod(_ context.Context, periodID id.ID) ([]*section.Section, error) {
	var out []*section.Section
	for _, s := range r.items {
		if s.ActivePeriodID != nil && *s.ActivePeriodID == periodID {
			out = append(out, s)
		}
	}
	return out, nil
}

// --- batches ---

// BatchRepo is an in-memory batch.Repository. Create enforces the
// one-live-batch-per-section rule the way the partial unique index does.
type BatchRepo struct {
	items    map[id.ID]*batch.Batch
	versions versionLedger
}

// NewBatchRepo creates an empty store.
func NewBatchRepo() *BatchRepo {
	return &BatchRepo{items: make(map[id.ID]*batch.Batch), versions: newVersionLedger()}
}

func (r *BatchRepo) Create(_ context.Context, b *batch.Batch) error {
	for _, other := range r.items {
		if other.SectionID == b.SectionID && other.IsLive() {
			return apperror.NewInvalidState("section already has a live batch").
				WithDetail("section_id", b.SectionID.String())
		}
	}
	r.items[b.ID] = b
	r.versions.create(&b.BaseRecord)
	return nil
}

func (r *BatchRepo) GetByID(_ context.Context, batchID id.ID) (*batch.Batch, error) {
	b, ok := r.items[batchID]
	if !ok {
		return nil, apperror.NewNotFound("batch", batchID.String())
	}
	return b, nil
}

func (r *BatchRepo) Update(_ context.Context, b *batch.Batch) error {
	if _, ok := r.items[b.ID]; !ok {
		return apperror.NewNotFound("batch", b.ID.String())
	}
	if err := r.versions.update("batches", &b.BaseRecord); err != nil {
		return err
	}
	r.items[b.ID] = b
	return nil
}

func (r *BatchRepo) FindLiveBySection(_ context.Context, sectionID id.ID) (*batch.Batch, error) {
	for _, b := range r.items {
		if b.SectionID == sectionID && b.IsLive() {
			return b, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) CountLiveByPeriod(_ context.Context, periodID id.ID) (int64, error) {
	var n int64
	for _, b := range r.items {
		if b.PeriodID != nil && *b.PeriodID == periodID && b.IsLive() {
			n++
		}
	}
	return n, nil
}

func (r *BatchRepo) ListByPeriod(_ context.Context, periodID id.ID) ([]*batch.Batch, error) {
	var out []*batch.Batch
	for _, b := range r.items {
		if b.PeriodID != nil && *b.PeriodID == periodID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *BatchRepo) ListBySection(_ context.Context, sectionID id.ID) ([]*batch.Batch, error) {
	var out []*batch.Batch
	for _, b := range r.items {
		if b.SectionID == sectionID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *BatchRepo) IncrementChicksOut(_ context.Context, batchID id.ID, n int) error {
	b, ok := r.items[batchID]
	if !ok {
		return apperror.NewNotFound("batch", batchID.String())
	}
	b.TotalChicksOut += n
	return nil
}

// --- daily balances ---

type balanceKey struct {
	batchID id.ID
	day     string
}

func keyFor(batchID id.ID, day time.Time) balanceKey {
	return balanceKey{batchID: batchID, day: dailybalance.Day(day).Format("2006-01-02")}
}

// DailyBalanceRepo is an in-memory dailybalance.Repository.
type DailyBalanceRepo struct {
	items   map[balanceKey]*dailybalance.DailyBalance
	weights map[balanceKey]types.Money
}

// NewDailyBalanceRepo creates an empty store.
func NewDailyBalanceRepo() *DailyBalanceRepo {
	return &DailyBalanceRepo{
		items:   make(map[balanceKey]*dailybalance.DailyBalance),
		weights: make(map[balanceKey]types.Money),
	}
}

func (r *DailyBalanceRepo) Create(_ context.Context, b *dailybalance.DailyBalance) error {
	k := keyFor(b.BatchID, b.Date)
	if _, ok := r.items[k]; ok {
		return apperror.NewDuplicate("daily_balance", "batch_id,date", k.day)
	}
	r.items[k] = b
	return nil
}

func (r *DailyBalanceRepo) FindByBatchAndDate(_ context.Context, batchID id.ID, day time.Time) (*dailybalance.DailyBalance, error) {
	return r.items[keyFor(batchID, day)], nil
}

func (r *DailyBalanceRepo) FindLatestBefore(_ context.Context, batchID id.ID, day time.Time) (*dailybalance.DailyBalance, error) {
	cutoff := dailybalance.Day(day)
	var latest *dailybalance.DailyBalance
	for _, b := range r.items {
		if b.BatchID != batchID || !b.Date.Before(cutoff) {
			continue
		}
		if latest == nil || b.Date.After(latest.Date) {
			latest = b
		}
	}
	return latest, nil
}

func (r *DailyBalanceRepo) AddDeaths(_ context.Context, batchID id.ID, day time.Time, n int) error {
	b, ok := r.items[keyFor(batchID, day)]
	if !ok {
		return apperror.NewNotFound("daily_balance", batchID.String())
	}
	b.Deaths += n
	b.Recompute()
	return nil
}

func (r *DailyBalanceRepo) AddChickOut(_ context.Context, batchID id.ID, day time.Time, n int) error {
	b, ok := r.items[keyFor(batchID, day)]
	if !ok {
		return apperror.NewNotFound("daily_balance", batchID.String())
	}
	b.ChickOut += n
	b.Recompute()
	return nil
}

func (r *DailyBalanceRepo) ListByBatch(_ context.Context, batchID id.ID) ([]*dailybalance.DailyBalance, error) {
	var out []*dailybalance.DailyBalance
	for _, b := range r.items {
		if b.BatchID == batchID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *DailyBalanceRepo) SumByBatch(_ context.Context, batchID id.ID) (int, int, error) {
	var deaths, chickOut int
	for _, b := range r.items {
		if b.BatchID == batchID {
			deaths += b.Deaths
			chickOut += b.ChickOut
		}
	}
	return deaths, chickOut, nil
}

func (r *DailyBalanceRepo) CloseForBatch(_ context.Context, batchID id.ID) error {
	for _, b := range r.items {
		if b.BatchID == batchID {
			b.IsClosed = true
		}
	}
	return nil
}

func (r *DailyBalanceRepo) UpsertAvgWeight(_ context.Context, batchID id.ID, day time.Time, kg types.Money) error {
	r.weights[keyFor(batchID, day)] = kg
	return nil
}

func (r *DailyBalanceRepo) FindLatestAvgWeight(_ context.Context, batchID id.ID) (*types.Money, error) {
	var latestDay string
	var latest *types.Money
	for k, kg := range r.weights {
		if k.batchID != batchID {
			continue
		}
		if latest == nil || k.day > latestDay {
			w := kg
			latest = &w
			latestDay = k.day
		}
	}
	return latest, nil
}

// --- chick-outs ---

// ChickOutRepo is an in-memory chickout.Repository. It resolves batch to
// period through the batch store for the period-wide counts.
type ChickOutRepo struct {
	items    map[id.ID]*chickout.ChickOut
	batches  *BatchRepo
	versions versionLedger
}

// NewChickOutRepo creates an empty store backed by the batch store.
func NewChickOutRepo(batches *BatchRepo) *ChickOutRepo {
	return &ChickOutRepo{
		items:    make(map[id.ID]*chickout.ChickOut),
		batches:  batches,
		versions: newVersionLedger(),
	}
}

func (r *ChickOutRepo) Create(_ context.Context, c *chickout.ChickOut) error {
	r.items[c.ID] = c
	r.versions.create(&c.BaseRecord)
	return nil
}

func (r *ChickOutRepo) GetByID(_ context.Context, chickOutID id.ID) (*chickout.ChickOut, error) {
	c, ok := r.items[chickOutID]
	if !ok {
		return nil, apperror.NewNotFound("chick_out", chickOutID.String())
	}
	return c, nil
}

func (r *ChickOutRepo) Update(_ context.Context, c *chickout.ChickOut) error {
	if _, ok := r.items[c.ID]; !ok {
		return apperror.NewNotFound("chick_out", c.ID.String())
	}
	if err := r.versions.update("chick_outs", &c.BaseRecord); err != nil {
		return err
	}
	r.items[c.ID] = c
	return nil
}

func (r *ChickOutRepo) ListByBatch(_ context.Context, batchID id.ID) ([]*chickout.ChickOut, error) {
	var out []*chickout.ChickOut
	for _, c := range r.items {
		if c.BatchID == batchID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *ChickOutRepo) ListBySection(_ context.Context, sectionID id.ID) ([]*chickout.ChickOut, error) {
	var out []*chickout.ChickOut
	for _, c := range r.items {
		if c.SectionID == sectionID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *ChickOutRepo) CountIncompleteByBatch(_ context.Context, batchID id.ID) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.BatchID == batchID && c.Status == chickout.StatusIncomplete {
			n++
		}
	}
	return n, nil
}

func (r *ChickOutRepo) CountIncompleteByPeriod(ctx context.Context, periodID id.ID) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.Status != chickout.StatusIncomplete {
			continue
		}
		b, err := r.batches.GetByID(ctx, c.BatchID)
		if err != nil {
			return 0, err
		}
		if b.PeriodID != nil && *b.PeriodID == periodID {
			n++
		}
	}
	return n, nil
}

func (r *ChickOutRepo) HasCompleteByBatch(_ context.Context, batchID id.ID) (bool, error) {
	for _, c := range r.items {
		if c.BatchID == batchID && c.Status == chickout.StatusComplete {
			return true, nil
		}
	}
	return false, nil
}

func (r *ChickOutRepo) SumCountsByBatch(_ context.Context, batchID id.ID) (int64, error) {
	var sum int64
	for _, c := range r.items {
		if c.BatchID == batchID {
			sum += int64(c.Count)
		}
	}
	return sum, nil
}

// --- expenses ---

// ExpenseRepo is an in-memory expense.Repository.
type ExpenseRepo struct {
	items []*expense.PeriodExpense
}

// NewExpenseRepo creates an empty store.
func NewExpenseRepo() *ExpenseRepo {
	return &ExpenseRepo{}
}

func (r *ExpenseRepo) Create(_ context.Context, e *expense.PeriodExpense) error {
	r.items = append(r.items, e)
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, expenseID id.ID) (*expense.PeriodExpense, error) {
	for _, e := range r.items {
		if e.ID == expenseID {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("period_expense", expenseID.String())
}

func (r *ExpenseRepo) List(_ context.Context, filter expense.ListFilter) ([]*expense.PeriodExpense, error) {
	var out []*expense.PeriodExpense
	for _, e := range r.items {
		if e.PeriodID != filter.PeriodID {
			continue
		}
		if filter.SectionID != nil && (e.SectionID == nil || *e.SectionID != *filter.SectionID) {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *ExpenseRepo) SumByPeriod(_ context.Context, periodID id.ID) (types.Money, error) {
	total := types.Zero()
	for _, e := range r.items {
		if e.PeriodID == periodID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *ExpenseRepo) SumByPeriodSection(_ context.Context, periodID, sectionID id.ID) (types.Money, error) {
	total := types.Zero()
	for _, e := range r.items {
		if e.PeriodID == periodID && e.SectionID != nil && *e.SectionID == sectionID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *ExpenseRepo) SumByCategory(_ context.Context, periodID id.ID) ([]expense.CategorySum, error) {
	sums := make(map[expense.Category]types.Money)
	for _, e := range r.items {
		if e.PeriodID != periodID {
			continue
		}
		cur, ok := sums[e.Category]
		if !ok {
			cur = types.Zero()
		}
		sums[e.Category] = cur.Add(e.Amount)
	}
	var out []expense.CategorySum
	for cat, total := range sums {
		out = append(out, expense.CategorySum{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

// --- incidents ---

// IncidentRepo is an in-memory incident.Repository.
type IncidentRepo struct {
	items    map[id.ID]*incident.Incident
	versions versionLedger
}

// NewIncidentRepo creates an empty store.
func NewIncidentRepo() *IncidentRepo {
	return &IncidentRepo{items: make(map[id.ID]*incident.Incident), versions: newVersionLedger()}
}

func (r *IncidentRepo) Create(_ context.Context, i *incident.Incident) error {
	r.items[i.ID] = i
	r.versions.create(&i.BaseRecord)
	return nil
}

func (r *IncidentRepo) GetByID(_ context.Context, incidentID id.ID) (*incident.Incident, error) {
	i, ok := r.items[incidentID]
	if !ok {
		return nil, apperror.NewNotFound("incident", incidentID.String())
	}
	return i, nil
}

func (r *IncidentRepo) Update(_ context.Context, i *incident.Incident) error {
	if _, ok := r.items[i.ID]; !ok {
		return apperror.NewNotFound("incident", i.ID.String())
	}
	if err := r.versions.update("incidents", &i.BaseRecord); err != nil {
		return err
	}
	r.items[i.ID] = i
	return nil
}

func (r *IncidentRepo) ListByPeriod(_ context.Context, periodID id.ID) ([]*incident.Incident, error) {
	var out []*incident.Incident
	for _, i := range r.items {
		if i.PeriodID == periodID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *IncidentRepo) CountUnresolvedBySection(_ context.Context, sectionID id.ID) (int64, error) {
	var n int64
	for _, i := range r.items {
		if i.SectionID == sectionID && i.Status == incident.StatusOpen && i.RequiresExpense {
			n++
		}
	}
	return n, nil
}

func (r *IncidentRepo) CountUnresolvedByPeriod(_ context.Context, periodID id.ID) (int64, error) {
	var n int64
	for _, i := range r.items {
		if i.PeriodID == periodID && i.Status == incident.StatusOpen && i.RequiresExpense {
			n++
		}
	}
	return n, nil
}

// --- payroll ---

// PayrollRepo is an in-memory payroll.Repository.
type PayrollRepo struct {
	assignments []*payroll.SalaryAssignment
	advances    []*payroll.SalaryAdvance
}

// NewPayrollRepo creates an empty store.
func NewPayrollRepo() *PayrollRepo {
	return &PayrollRepo{}
}

func (r *PayrollRepo) CreateAssignment(_ context.Context, a *payroll.SalaryAssignment) error {
	for _, other := range r.assignments {
		if other.PeriodID == a.PeriodID && other.EmployeeID == a.EmployeeID {
			return apperror.NewDuplicate("salary_assignment", "period_id,employee_id", a.EmployeeID)
		}
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *PayrollRepo) FindAssignment(_ context.Context, periodID id.ID, employeeID string) (*payroll.SalaryAssignment, error) {
	for _, a := range r.assignments {
		if a.PeriodID == periodID && a.EmployeeID == employeeID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *PayrollRepo) ListAssignments(_ context.Context, periodID id.ID) ([]*payroll.SalaryAssignment, error) {
	var out []*payroll.SalaryAssignment
	for _, a := range r.assignments {
		if a.PeriodID == periodID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *PayrollRepo) CreateAdvance(_ context.Context, adv *payroll.SalaryAdvance) error {
	r.advances = append(r.advances, adv)
	return nil
}

func (r *PayrollRepo) SumAdvances(_ context.Context, periodID id.ID, employeeID string) (types.Money, error) {
	total := types.Zero()
	for _, adv := range r.advances {
		if adv.PeriodID == periodID && adv.EmployeeID == employeeID {
			total = total.Add(adv.Amount)
		}
	}
	return total, nil
}

// --- forecast prices ---

// PriceRepo is an in-memory forecast.PriceRepository.
type PriceRepo struct {
	items []*forecast.Price
}

// NewPriceRepo creates an empty store.
func NewPriceRepo() *PriceRepo {
	return &PriceRepo{}
}

func sameScope(a, b *id.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *PriceRepo) Activate(_ context.Context, p *forecast.Price) error {
	for _, other := range r.items {
		if other.PeriodID == p.PeriodID && sameScope(other.SectionID, p.SectionID) {
			other.IsActive = false
		}
	}
	r.items = append(r.items, p)
	return nil
}

func (r *PriceRepo) FindActive(_ context.Context, periodID id.ID, sectionID *id.ID) (*forecast.Price, error) {
	for _, p := range r.items {
		if p.PeriodID == periodID && p.IsActive && sameScope(p.SectionID, sectionID) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PriceRepo) ListByPeriod(_ context.Context, periodID id.ID) ([]*forecast.Price, error) {
	var out []*forecast.Price
	for _, p := range r.items {
		if p.PeriodID == periodID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- report aggregations ---

// ReportRepo is an in-memory reports.Repository computed over the chick-out
// and batch stores.
type ReportRepo struct {
	chickOuts *ChickOutRepo
	batches   *BatchRepo
}

// NewReportRepo creates a report store over the given stores.
func NewReportRepo(chickOuts *ChickOutRepo, batches *BatchRepo) *ReportRepo {
	return &ReportRepo{chickOuts: chickOuts, batches: batches}
}

func (r *ReportRepo) inPeriod(ctx context.Context, c *chickout.ChickOut, periodID id.ID) (bool, error) {
	b, err := r.batches.GetByID(ctx, c.BatchID)
	if err != nil {
		return false, err
	}
	return b.PeriodID != nil && *b.PeriodID == periodID, nil
}

func (r *ReportRepo) PeriodRevenue(ctx context.Context, periodID id.ID) (types.Money, error) {
	total := types.Zero()
	for _, c := range r.chickOuts.items {
		if c.Status != chickout.StatusComplete || c.TotalRevenue == nil {
			continue
		}
		ok, err := r.inPeriod(ctx, c, periodID)
		if err != nil {
			return types.Zero(), err
		}
		if ok {
			total = total.Add(*c.TotalRevenue)
		}
	}
	return total, nil
}

func (r *ReportRepo) FinalChicksOut(ctx context.Context, periodID id.ID) (int, error) {
	var sum int
	for _, c := range r.chickOuts.items {
		if c.Status != chickout.StatusComplete {
			continue
		}
		ok, err := r.inPeriod(ctx, c, periodID)
		if err != nil {
			return 0, err
		}
		if ok {
			sum += c.Count
		}
	}
	return sum, nil
}

func (r *ReportRepo) PeriodChicksIn(_ context.Context, periodID id.ID) (int, error) {
	var sum int
	for _, b := range r.batches.items {
		if b.PeriodID != nil && *b.PeriodID == periodID {
			sum += b.TotalChicksIn
		}
	}
	return sum, nil
}
