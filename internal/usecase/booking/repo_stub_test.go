package booking

import (
	"context"
	"sync"

	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

// memState is the backing store for the in-memory repository used by these
// tests. Values are stored by value; reads hand out copies, updates write
// whole rows back, mirroring how the gorm repository behaves.
type memState struct {
	schedules    map[uint]models.Schedule
	records      map[uint]models.HealthRecord
	appointments map[uint]models.Appointment
	payments     map[uint]models.Payment
	doctors      map[uint]models.DoctorProfile // keyed by user ID

	nextAppointmentID uint
	nextPaymentID     uint
}

func newMemState() *memState {
	return &memState{
		schedules:    map[uint]models.Schedule{},
		records:      map[uint]models.HealthRecord{},
		appointments: map[uint]models.Appointment{},
		payments:     map[uint]models.Payment{},
		doctors:      map[uint]models.DoctorProfile{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.schedules {
		c.schedules[k] = v
	}
	for k, v := range s.records {
		c.records[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.doctors {
		c.doctors[k] = v
	}
	c.nextAppointmentID = s.nextAppointmentID
	c.nextPaymentID = s.nextPaymentID
	return c
}

// memRepo serializes transactions with a mutex, standing in for the row locks
// of the real repository, and rolls the state back when the unit of work
// fails.
type memRepo struct {
	mu sync.Mutex
	s  *memState
}

func newMemRepo() *memRepo {
	return &memRepo{s: newMemState()}
}

func (r *memRepo) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.s.clone()
	if err := fn(&memTx{s: r.s}); err != nil {
		r.s = snap
		return err
	}
	return nil
}

func (r *memRepo) tx() *memTx {
	return &memTx{s: r.s}
}

func (r *memRepo) GetSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetSchedule(ctx, id)
}

func (r *memRepo) ReserveSeat(ctx context.Context, id uint) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().ReserveSeat(ctx, id)
}

func (r *memRepo) ReleaseSeat(ctx context.Context, id uint) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().ReleaseSeat(ctx, id)
}

func (r *memRepo) GetHealthRecord(ctx context.Context, id uint) (*models.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetHealthRecord(ctx, id)
}

func (r *memRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetAppointment(ctx, id)
}

func (r *memRepo) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetAppointmentForUpdate(ctx, id)
}

func (r *memRepo) HasActiveAppointment(ctx context.Context, hrID, schedID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().HasActiveAppointment(ctx, hrID, schedID)
}

func (r *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().CreateAppointment(ctx, ap)
}

func (r *memRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().UpdateAppointment(ctx, ap)
}

func (r *memRepo) GetDoctorProfileByUserID(ctx context.Context, userID uint) (*models.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetDoctorProfileByUserID(ctx, userID)
}

func (r *memRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().CreatePayment(ctx, p)
}

func (r *memRepo) GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetPaymentForUpdate(ctx, id)
}

func (r *memRepo) GetPaymentByAppointment(ctx context.Context, apID uint) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().GetPaymentByAppointment(ctx, apID)
}

func (r *memRepo) UpdatePayment(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tx().UpdatePayment(ctx, p)
}

var _ domain.Repository = (*memRepo)(nil)

// memTx is the view handed to Transact callbacks; the enclosing memRepo
// already holds the lock.
type memTx struct {
	s *memState
}

func (t *memTx) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(t)
}

func (t *memTx) GetSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	sched, ok := t.s.schedules[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := sched
	return &cp, nil
}

func (t *memTx) ReserveSeat(ctx context.Context, id uint) (*models.Schedule, error) {
	sched, ok := t.s.schedules[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if sched.BookedCount >= sched.Capacity {
		return nil, httperr.ErrBusiness(httperr.CodeSlotFull)
	}

	sched.BookedCount++
	sched.Active = sched.BookedCount < sched.Capacity
	t.s.schedules[id] = sched

	cp := sched
	return &cp, nil
}

func (t *memTx) ReleaseSeat(ctx context.Context, id uint) (*models.Schedule, error) {
	sched, ok := t.s.schedules[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if sched.BookedCount > 0 {
		sched.BookedCount--
	}
	sched.Active = sched.BookedCount < sched.Capacity
	t.s.schedules[id] = sched

	cp := sched
	return &cp, nil
}

func (t *memTx) GetHealthRecord(ctx context.Context, id uint) (*models.HealthRecord, error) {
	hr, ok := t.s.records[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := hr
	return &cp, nil
}

func (t *memTx) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := t.s.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	cp := ap
	cp.Schedule = t.s.schedules[ap.ScheduleID]
	cp.HealthRecord = t.s.records[ap.HealthRecordID]
	return &cp, nil
}

func (t *memTx) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return t.GetAppointment(ctx, id)
}

func (t *memTx) HasActiveAppointment(ctx context.Context, hrID, schedID uint) (bool, error) {
	for _, ap := range t.s.appointments {
		if ap.HealthRecordID == hrID && ap.ScheduleID == schedID &&
			ap.Status != string(domain.StatusCancelled) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	t.s.nextAppointmentID++
	ap.ID = t.s.nextAppointmentID
	t.s.appointments[ap.ID] = *ap
	return nil
}

func (t *memTx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := t.s.appointments[ap.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	t.s.appointments[ap.ID] = *ap
	return nil
}

func (t *memTx) GetDoctorProfileByUserID(ctx context.Context, userID uint) (*models.DoctorProfile, error) {
	doc, ok := t.s.doctors[userID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := doc
	return &cp, nil
}

func (t *memTx) CreatePayment(ctx context.Context, p *models.Payment) error {
	t.s.nextPaymentID++
	p.ID = t.s.nextPaymentID
	t.s.payments[p.ID] = *p
	return nil
}

func (t *memTx) GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	p, ok := t.s.payments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := p
	return &cp, nil
}

func (t *memTx) GetPaymentByAppointment(ctx context.Context, apID uint) (*models.Payment, error) {
	for _, p := range t.s.payments {
		if p.AppointmentID == apID {
			cp := p
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (t *memTx) UpdatePayment(ctx context.Context, p *models.Payment) error {
	if _, ok := t.s.payments[p.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	t.s.payments[p.ID] = *p
	return nil
}

var _ domain.Repository = (*memTx)(nil)

// stubNotifier records outbound mail instead of sending it.
type stubNotifier struct {
	mu            sync.Mutex
	confirmations []mailer.BookingConfirmation
	receipts      []mailer.PaymentReceipt
}

func (n *stubNotifier) BookingConfirmed(m mailer.BookingConfirmation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, m)
}

func (n *stubNotifier) PaymentReceived(m mailer.PaymentReceipt) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receipts = append(n.receipts, m)
}
