package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/models"
)

// In-memory repository fakes backing the service tests. Only behavior
// the services actually exercise is modeled; the rest returns zero
// values.

type fakeFormRepo struct {
	mu      sync.Mutex
	forms   map[int64]models.Form
	nextID  int64
	deleted []int64
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: make(map[int64]models.Form)}
}

func (f *fakeFormRepo) FindByID(_ context.Context, id int64) (*models.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, ok := f.forms[id]
	if !ok {
		return nil, nil
	}
	form.Data = form.Data.Clone()
	return &form, nil
}

func (f *fakeFormRepo) FindByIDValues(ctx context.Context, id int64) (models.Values, error) {
	form, err := f.FindByID(ctx, id)
	if err != nil || form == nil {
		return nil, err
	}
	return store.FormMapper{}.ToValues(*form)
}

func (f *fakeFormRepo) FindAll(_ context.Context, limit, offset uint64) ([]models.Form, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.forms))
	for id := range f.forms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Form
	for i, id := range ids {
		if offset > 0 && uint64(i) < offset {
			continue
		}
		if limit > 0 && uint64(len(out)) >= limit {
			break
		}
		out = append(out, f.forms[id])
	}
	return out, nil
}

func (f *fakeFormRepo) FindAllValues(context.Context, uint64, uint64) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeFormRepo) FindByField(context.Context, string, any) ([]models.Form, error) {
	return nil, nil
}

func (f *fakeFormRepo) FindByFieldValues(context.Context, string, any) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeFormRepo) FindByFields(context.Context, models.Values) ([]models.Form, error) {
	return nil, nil
}

func (f *fakeFormRepo) FindByFieldsValues(context.Context, models.Values) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeFormRepo) Create(_ context.Context, form models.Form) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	form.ID = f.nextID
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now
	f.forms[form.ID] = form
	return form.ID, nil
}

func (f *fakeFormRepo) CreateValues(context.Context, models.Values) (int64, error) {
	return 0, nil
}

func (f *fakeFormRepo) Update(_ context.Context, form models.Form) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.forms[form.ID]; !ok {
		return false, nil
	}
	form.UpdatedAt = time.Now().UTC()
	f.forms[form.ID] = form
	return true, nil
}

func (f *fakeFormRepo) UpdateValues(context.Context, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeFormRepo) UpdatePatch(_ context.Context, id int64, patch models.Values) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, ok := f.forms[id]
	if !ok {
		return false, nil
	}
	for key, value := range patch {
		switch key {
		case "data":
			data, err := models.UnmarshalData(value.(string))
			if err != nil {
				return false, err
			}
			form.Data = data
		case "notes":
			notes := value.(string)
			form.Notes = &notes
		case "preparer_name":
			preparer := value.(string)
			form.PreparerName = &preparer
		case "status":
			form.Status = models.FormStatus(value.(string))
		}
	}
	form.UpdatedAt = time.Now().UTC()
	f.forms[id] = form
	return true, nil
}

func (f *fakeFormRepo) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.forms[id]; !ok {
		return false, nil
	}
	delete(f.forms, id)
	return true, nil
}

func (f *fakeFormRepo) Count(context.Context, models.Values) (int64, error) {
	return int64(len(f.forms)), nil
}

func (f *fakeFormRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.forms[id]
	return ok, nil
}

func (f *fakeFormRepo) InvalidateCache() {}

func (f *fakeFormRepo) FindByIncident(_ context.Context, incidentName string) ([]models.Form, error) {
	var out []models.Form
	for _, form := range f.forms {
		if form.IncidentName == incidentName {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) FindByStatus(_ context.Context, status models.FormStatus) ([]models.Form, error) {
	var out []models.Form
	for _, form := range f.forms {
		if form.Status == status {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) FindByType(_ context.Context, formType string) ([]models.Form, error) {
	var out []models.Form
	for _, form := range f.forms {
		if form.FormType == formType {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) Search(_ context.Context, query string, _, _ uint64) ([]models.Form, error) {
	var out []models.Form
	for _, form := range f.forms {
		if strings.Contains(form.IncidentName, query) {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) UpdateStatus(ctx context.Context, id int64, status models.FormStatus) (bool, error) {
	return f.UpdatePatch(ctx, id, models.Values{"status": string(status)})
}

func (f *fakeFormRepo) DeleteCascade(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.forms[id]; !ok {
		return false, nil
	}
	delete(f.forms, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

var _ store.FormRepository = (*fakeFormRepo)(nil)

type fakeIncidentRepo struct {
	mu        sync.Mutex
	incidents map[int64]models.Incident
	nextID    int64
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{incidents: make(map[int64]models.Incident)}
}

func (f *fakeIncidentRepo) FindByID(_ context.Context, id int64) (*models.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	incident, ok := f.incidents[id]
	if !ok {
		return nil, nil
	}
	return &incident, nil
}

func (f *fakeIncidentRepo) FindByIDValues(context.Context, int64) (models.Values, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) FindAll(_ context.Context, _, _ uint64) ([]models.Incident, error) {
	var out []models.Incident
	for _, incident := range f.incidents {
		out = append(out, incident)
	}
	return out, nil
}

func (f *fakeIncidentRepo) FindAllValues(context.Context, uint64, uint64) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) FindByField(context.Context, string, any) ([]models.Incident, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) FindByFieldValues(context.Context, string, any) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) FindByFields(context.Context, models.Values) ([]models.Incident, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) FindByFieldsValues(context.Context, models.Values) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeIncidentRepo) Create(_ context.Context, incident models.Incident) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.incidents {
		if existing.Name == incident.Name {
			return 0, store.ErrIncidentNameTaken
		}
	}
	f.nextID++
	incident.ID = f.nextID
	now := time.Now().UTC()
	incident.CreatedAt = now
	incident.UpdatedAt = now
	f.incidents[incident.ID] = incident
	return incident.ID, nil
}

func (f *fakeIncidentRepo) CreateValues(context.Context, models.Values) (int64, error) {
	return 0, nil
}

func (f *fakeIncidentRepo) Update(context.Context, models.Incident) (bool, error) {
	return false, nil
}

func (f *fakeIncidentRepo) UpdateValues(context.Context, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeIncidentRepo) UpdatePatch(context.Context, int64, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeIncidentRepo) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.incidents[id]; !ok {
		return false, nil
	}
	delete(f.incidents, id)
	return true, nil
}

func (f *fakeIncidentRepo) Count(context.Context, models.Values) (int64, error) {
	return int64(len(f.incidents)), nil
}

func (f *fakeIncidentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.incidents[id]
	return ok, nil
}

func (f *fakeIncidentRepo) InvalidateCache() {}

func (f *fakeIncidentRepo) FindActive(_ context.Context) ([]models.Incident, error) {
	var out []models.Incident
	for _, incident := range f.incidents {
		if incident.EndDate == nil {
			out = append(out, incident)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) FindByName(_ context.Context, name string) (*models.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, incident := range f.incidents {
		if incident.Name == name {
			found := incident
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeIncidentRepo) SetClosed(_ context.Context, id int64, endDate time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	incident, ok := f.incidents[id]
	if !ok {
		return false, nil
	}
	incident.EndDate = &endDate
	f.incidents[id] = incident
	return true, nil
}

func (f *fakeIncidentRepo) SetReopened(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	incident, ok := f.incidents[id]
	if !ok {
		return false, nil
	}
	incident.EndDate = nil
	f.incidents[id] = incident
	return true, nil
}

var _ store.IncidentRepository = (*fakeIncidentRepo)(nil)

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[int64]models.Attachment
	nextID      int64
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[int64]models.Attachment)}
}

func (f *fakeAttachmentRepo) FindByID(_ context.Context, id int64) (*models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attachment, ok := f.attachments[id]
	if !ok {
		return nil, nil
	}
	return &attachment, nil
}

func (f *fakeAttachmentRepo) FindByIDValues(context.Context, int64) (models.Values, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindAll(context.Context, uint64, uint64) ([]models.Attachment, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindAllValues(context.Context, uint64, uint64) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindByField(context.Context, string, any) ([]models.Attachment, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindByFieldValues(context.Context, string, any) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindByFields(context.Context, models.Values) ([]models.Attachment, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) FindByFieldsValues(context.Context, models.Values) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeAttachmentRepo) Create(_ context.Context, attachment models.Attachment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	attachment.ID = f.nextID
	attachment.CreatedAt = time.Now().UTC()
	f.attachments[attachment.ID] = attachment
	return attachment.ID, nil
}

func (f *fakeAttachmentRepo) CreateValues(context.Context, models.Values) (int64, error) {
	return 0, nil
}

func (f *fakeAttachmentRepo) Update(context.Context, models.Attachment) (bool, error) {
	return false, nil
}

func (f *fakeAttachmentRepo) UpdateValues(context.Context, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeAttachmentRepo) UpdatePatch(context.Context, int64, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.attachments[id]; !ok {
		return false, nil
	}
	delete(f.attachments, id)
	return true, nil
}

func (f *fakeAttachmentRepo) Count(context.Context, models.Values) (int64, error) {
	return int64(len(f.attachments)), nil
}

func (f *fakeAttachmentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.attachments[id]
	return ok, nil
}

func (f *fakeAttachmentRepo) InvalidateCache() {}

func (f *fakeAttachmentRepo) FindByForm(_ context.Context, formID int64) ([]models.Attachment, error) {
	var out []models.Attachment
	for _, attachment := range f.attachments {
		if attachment.FormID == formID {
			out = append(out, attachment)
		}
	}
	return out, nil
}

func (f *fakeAttachmentRepo) DeleteByForm(_ context.Context, formID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, attachment := range f.attachments {
		if attachment.FormID == formID {
			delete(f.attachments, id)
			deleted++
		}
	}
	return deleted, nil
}

var _ store.AttachmentRepository = (*fakeAttachmentRepo)(nil)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByIDValues(context.Context, int64) (models.Values, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, _, _ uint64) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) FindAllValues(context.Context, uint64, uint64) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByField(context.Context, string, any) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByFieldValues(context.Context, string, any) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByFields(context.Context, models.Values) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByFieldsValues(context.Context, models.Values) ([]models.Values, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.CallSign == user.CallSign {
			return 0, store.ErrCallSignTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) CreateValues(context.Context, models.Values) (int64, error) {
	return 0, nil
}

func (f *fakeUserRepo) Update(context.Context, models.User) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) UpdateValues(context.Context, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) UpdatePatch(context.Context, int64, models.Values) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeUserRepo) Count(context.Context, models.Values) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) InvalidateCache() {}

func (f *fakeUserRepo) FindByCallSign(_ context.Context, callSign string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.CallSign == callSign {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return false, nil
	}
	now := time.Now().UTC()
	user.LastLogin = &now
	f.users[id] = user
	return true, nil
}

var _ store.UserRepository = (*fakeUserRepo)(nil)
