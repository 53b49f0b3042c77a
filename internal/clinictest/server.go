// Package clinictest runs an in-memory stand-in for the clinic backend
// so client, pipeline, and controller tests exercise real HTTP without
// a real server. It honors the backend conventions the client relies
// on: offset/limit list envelopes, term search, detail error bodies.
package clinictest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicops/clinic-console/internal/clinic"
)

// Server is the fake backend. All exported mutators are safe for
// concurrent use with in-flight requests.
type Server struct {
	HTTP *httptest.Server

	mu            sync.Mutex
	patients      map[string]clinic.Patient
	appointments  map[string]clinic.Appointment
	types         map[string]clinic.AppointmentType
	preconditions map[string]clinic.Precondition
	files         map[string]clinic.PatientFile
	fileContent   map[string][]byte
	slots         map[string][]clinic.TimeSlot // keyed by typeID+"|"+date
	settings      clinic.Settings
	weather       clinic.Weather
	counts        map[string]int
	lastBody      []byte
	failStatus    int
	failBody      string
	failCount     int
}

// New starts the fake backend. Callers own shutdown via Close.
func New() *Server {
	s := &Server{
		patients:      make(map[string]clinic.Patient),
		appointments:  make(map[string]clinic.Appointment),
		types:         make(map[string]clinic.AppointmentType),
		preconditions: make(map[string]clinic.Precondition),
		files:         make(map[string]clinic.PatientFile),
		fileContent:   make(map[string][]byte),
		slots:         make(map[string][]clinic.TimeSlot),
		counts:        make(map[string]int),
		settings:      clinic.Settings{OwnerID: "owner-1", ClinicName: "Test Clinic"},
		weather:       clinic.Weather{Location: "Testville", TempCelsius: 21, Condition: "clear"},
	}
	s.HTTP = httptest.NewServer(s.router())
	return s
}

// Close shuts the fake backend down.
func (s *Server) Close() { s.HTTP.Close() }

// URL returns the backend base URL.
func (s *Server) URL() string { return s.HTTP.URL }

// FailNext makes the next n requests return the given status and body
// before normal handling resumes.
func (s *Server) FailNext(n, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCount = n
	s.failStatus = status
	s.failBody = body
}

// Count returns how many requests hit "METHOD /path" routes, e.g.
// "GET /patients" or "GET /patients/search".
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

// LastBody returns the raw body of the most recent write request.
func (s *Server) LastBody() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.lastBody...)
}

// AddPatient seeds a patient, assigning an id when absent.
func (s *Server) AddPatient(p clinic.Patient) clinic.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.patients[p.ID] = p
	return p
}

// AddAppointment seeds an appointment, assigning an id when absent.
func (s *Server) AddAppointment(a clinic.Appointment) clinic.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = clinic.StatusBooked
	}
	s.appointments[a.ID] = a
	return a
}

// AddType seeds an appointment type.
func (s *Server) AddType(t clinic.AppointmentType) clinic.AppointmentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.types[t.ID] = t
	return t
}

// SetSlots seeds the available slots for a type on a date.
func (s *Server) SetSlots(typeID, date string, slots []clinic.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[typeID+"|"+date] = slots
}

// AddFile seeds file metadata and content.
func (s *Server) AddFile(f clinic.PatientFile, content []byte) clinic.PatientFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.files[f.ID] = f
	s.fileContent[f.ID] = content
	return f
}

// SetSettings replaces the stored settings document.
func (s *Server) SetSettings(settings clinic.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// SetWeather replaces the canned weather payload.
func (s *Server) SetWeather(w clinic.Weather) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = w
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.bookkeeping)

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", s.listPatients)
		r.Post("/", s.createPatient)
		r.Get("/search", s.searchPatients)
		r.Get("/summary", s.patientSummary)
		r.Get("/export", s.exportPatients)
		r.Route("/{patientID}", func(r chi.Router) {
			r.Get("/", s.getPatient)
			r.Put("/", s.updatePatient)
			r.Delete("/", s.deletePatient)
			r.Get("/appointments", s.patientAppointments)
			r.Get("/preconditions", s.listPreconditions)
			r.Post("/preconditions", s.createPrecondition)
			r.Put("/preconditions/{preconditionID}", s.updatePrecondition)
			r.Delete("/preconditions/{preconditionID}", s.deletePrecondition)
			r.Get("/files", s.listFiles)
			r.Post("/files", s.uploadFile)
			r.Get("/files/{fileID}/thumbnail", s.fileBinary)
			r.Get("/files/{fileID}/preview", s.fileBinary)
			r.Get("/files/{fileID}/download", s.fileBinary)
			r.Put("/files/{fileID}/description", s.updateFileDescription)
			r.Delete("/files/{fileID}", s.deleteFile)
		})
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", s.listAppointments)
		r.Post("/", s.createAppointment)
		r.Get("/{appointmentID}", s.getAppointment)
		r.Put("/{appointmentID}", s.updateAppointment)
		r.Put("/{appointmentID}/status", s.updateAppointmentStatus)
		r.Delete("/{appointmentID}", s.deleteAppointment)
	})

	r.Route("/appointment-types", func(r chi.Router) {
		r.Get("/", s.listTypes)
		r.Post("/", s.createType)
		r.Get("/{typeID}", s.getType)
		r.Put("/{typeID}", s.updateType)
		r.Delete("/{typeID}", s.deleteType)
		r.Get("/{typeID}/available-slots", s.availableSlots)
	})

	r.Get("/settings", s.getSettings)
	r.Put("/settings", s.updateSettings)
	r.Get("/settings/field-values", s.settingsFieldValues)
	r.Get("/weather", s.getWeather)
	r.Get("/health", s.health)
	r.Post("/auth/login", s.login)

	return r
}

// bookkeeping tracks per-route hit counts, captures write bodies, and
// applies injected failures.
func (s *Server) bookkeeping(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.counts[r.Method+" "+routeKey(r.URL.Path)]++
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if body, err := io.ReadAll(r.Body); err == nil {
				s.lastBody = body
				r.Body = io.NopCloser(strings.NewReader(string(body)))
			}
		}
		if s.failCount > 0 {
			s.failCount--
			status, body := s.failStatus, s.failBody
			s.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// routeKey collapses concrete ids so counts group by route shape.
func routeKey(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	known := map[string]bool{
		"patients": true, "appointments": true, "appointment-types": true,
		"search": true, "summary": true, "export": true, "preconditions": true,
		"files": true, "thumbnail": true, "preview": true, "download": true,
		"description": true, "settings": true, "field-values": true,
		"weather": true, "health": true, "auth": true, "login": true,
		"available-slots": true, "status": true,
	}
	for i, part := range parts {
		if !known[part] {
			parts[i] = "{id}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func parseWindow(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	return offset, limit
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *Server) sortedPatients() []clinic.Patient {
	out := make([]clinic.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName == out[j].LastName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out
}

func (s *Server) listPatients(w http.ResponseWriter, r *http.Request) {
	offset, limit := parseWindow(r)
	s.mu.Lock()
	all := s.sortedPatients()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  window(all, offset, limit),
		"total": len(all),
	})
}

func (s *Server) searchPatients(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("term")))
	offset, limit := parseWindow(r)

	s.mu.Lock()
	var matched []clinic.Patient
	for _, p := range s.sortedPatients() {
		haystack := strings.ToLower(strings.Join([]string{p.FirstName, p.LastName, p.Email, p.Phone, p.City}, " "))
		if strings.Contains(haystack, term) {
			matched = append(matched, p)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  window(matched, offset, limit),
		"total": len(matched),
	})
}

func (s *Server) createPatient(w http.ResponseWriter, r *http.Request) {
	var p clinic.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed patient body")
		return
	}
	if p.FirstName == "" || p.LastName == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "first and last name are required")
		return
	}
	p.ID = uuid.NewString()
	s.mu.Lock()
	s.patients[p.ID] = p
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getPatient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.patients[chi.URLParam(r, "patientID")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updatePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	var p clinic.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed patient body")
		return
	}
	s.mu.Lock()
	_, ok := s.patients[id]
	if ok {
		p.ID = id
		s.patients[id] = p
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	s.mu.Lock()
	_, ok := s.patients[id]
	delete(s.patients, id)
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "patient not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patientSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	total := len(s.patients)
	upcoming := 0
	for _, a := range s.appointments {
		if a.Status == clinic.StatusBooked {
			upcoming++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, clinic.PatientSummary{TotalPatients: total, UpcomingBookings: upcoming})
}

func (s *Server) exportPatients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := s.sortedPatients()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString("id,first_name,last_name,phone,email\n")
	for _, p := range all {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s\n", p.ID, p.FirstName, p.LastName, p.Phone, p.Email)
	}
	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	offset, limit := parseWindow(r)
	s.mu.Lock()
	all := s.sortedAppointments()
	s.mu.Unlock()
	if date := r.URL.Query().Get("date"); date != "" {
		matched := all[:0]
		for _, a := range all {
			if a.Date == date {
				matched = append(matched, a)
			}
		}
		all = matched
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  window(all, offset, limit),
		"total": len(all),
	})
}

func (s *Server) sortedAppointments() []clinic.Appointment {
	out := make([]clinic.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Date < out[j].Date
	})
	return out
}

func (s *Server) patientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	s.mu.Lock()
	out := []clinic.Appointment{}
	for _, a := range s.sortedAppointments() {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var a clinic.Appointment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed appointment body")
		return
	}
	s.mu.Lock()
	for _, existing := range s.appointments {
		if existing.Date == a.Date && existing.StartTime == a.StartTime && existing.Status != clinic.StatusCancelled {
			s.mu.Unlock()
			writeDetail(w, http.StatusConflict, "time slot already booked")
			return
		}
	}
	a.ID = uuid.NewString()
	if a.Status == "" {
		a.Status = clinic.StatusBooked
	}
	s.appointments[a.ID] = a
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.appointments[chi.URLParam(r, "appointmentID")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	var a clinic.Appointment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed appointment body")
		return
	}
	s.mu.Lock()
	_, ok := s.appointments[id]
	if ok {
		a.ID = id
		s.appointments[id] = a
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	var body struct {
		Status clinic.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed status body")
		return
	}
	s.mu.Lock()
	a, ok := s.appointments[id]
	if ok {
		a.Status = body.Status
		s.appointments[id] = a
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	s.mu.Lock()
	_, ok := s.appointments[id]
	delete(s.appointments, id)
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]clinic.AppointmentType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createType(w http.ResponseWriter, r *http.Request) {
	var t clinic.AppointmentType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed type body")
		return
	}
	t.ID = uuid.NewString()
	s.mu.Lock()
	s.types[t.ID] = t
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getType(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, ok := s.types[chi.URLParam(r, "typeID")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")
	var t clinic.AppointmentType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed type body")
		return
	}
	s.mu.Lock()
	_, ok := s.types[id]
	if ok {
		t.ID = id
		s.types[id] = t
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "appointment type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "typeID")
	s.mu.Lock()
	delete(s.types, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) availableSlots(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "typeID")
	date := r.URL.Query().Get("date")
	s.mu.Lock()
	slots, ok := s.slots[typeID+"|"+date]
	s.mu.Unlock()
	if !ok {
		slots = []clinic.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (s *Server) listPreconditions(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	s.mu.Lock()
	out := []clinic.Precondition{}
	for _, p := range s.preconditions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPrecondition(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	var p clinic.Precondition
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed precondition body")
		return
	}
	p.ID = uuid.NewString()
	p.PatientID = patientID
	s.mu.Lock()
	s.preconditions[p.ID] = p
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePrecondition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "preconditionID")
	var p clinic.Precondition
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed precondition body")
		return
	}
	s.mu.Lock()
	existing, ok := s.preconditions[id]
	if ok {
		p.ID = id
		p.PatientID = existing.PatientID
		s.preconditions[id] = p
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "precondition not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePrecondition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "preconditionID")
	s.mu.Lock()
	delete(s.preconditions, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	s.mu.Lock()
	out := []clinic.PatientFile{}
	for _, f := range s.files {
		if f.PatientID == patientID {
			out = append(out, f)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file field is required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not read upload")
		return
	}

	meta := clinic.PatientFile{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		FileName:    header.Filename,
		FileType:    header.Header.Get("Content-Type"),
		SizeBytes:   int64(len(content)),
		Description: r.FormValue("description"),
		ObjectName:  "objects/" + uuid.NewString(),
	}
	s.mu.Lock()
	s.files[meta.ID] = meta
	s.fileContent[meta.ID] = content
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, meta)
}

func (s *Server) fileBinary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	s.mu.Lock()
	content, ok := s.fileContent[id]
	meta := s.files[id]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "file not found")
		return
	}
	contentType := meta.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(content)
}

func (s *Server) updateFileDescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed description body")
		return
	}
	s.mu.Lock()
	f, ok := s.files[id]
	if ok {
		f.Description = body.Description
		s.files[id] = f
	}
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "file not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	s.mu.Lock()
	delete(s.files, id)
	delete(s.fileContent, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var body clinic.Settings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "malformed settings body")
		return
	}
	s.mu.Lock()
	if body.OwnerID == "" {
		body.OwnerID = s.settings.OwnerID
	}
	s.settings = body
	settings := s.settings
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) settingsFieldValues(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("field") {
	case "date_format":
		writeJSON(w, http.StatusOK, []string{"YYYY-MM-DD", "DD/MM/YYYY", "MM/DD/YYYY"})
	case "theme_variant":
		writeJSON(w, http.StatusOK, []string{"light", "dark"})
	default:
		writeDetail(w, http.StatusNotFound, "unknown settings field")
	}
}

func (s *Server) getWeather(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	weather := s.weather
	s.mu.Unlock()
	if loc := r.URL.Query().Get("location"); loc != "" {
		weather.Location = loc
	}
	writeJSON(w, http.StatusOK, weather)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	// Unsigned token with a far-future exp; the client only inspects
	// claims, it never verifies.
	token := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJzdWIiOiJvd25lci0xIiwiZXhwIjo0MTAyNDQ0ODAwfQ."
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"owner_id":     "owner-1",
	})
}
