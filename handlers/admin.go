// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// AdminHandler covers the administrative record-management endpoints:
// plain parameterized CRUD with no invariants beyond foreign-key integrity.
// The election core never goes through these paths.
type AdminHandler struct {
	db *sql.DB
}

func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// activeOrDefault is for creates only; updates use COALESCE so an omitted
// field preserves the stored flag instead of re-activating the record.
func activeOrDefault(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}

// Login handles POST /admin/login
// Credential check for the admin login screen. Admin API routes themselves
// are gated by middleware.RequireAdmin basic auth.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	// LoginRequest reuses student_id for the username field
	var (
		storedHash string
		fullName   sql.NullString
		role       string
	)
	err := h.db.QueryRow(`
		SELECT password_hash, full_name, role FROM admin_users
		WHERE username = $1 AND active = TRUE
	`, req.StudentID).Scan(&storedHash, &fullName, &role)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query admin user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, ok := auth.VerifyCredential(storedHash, req.Password); !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Username: req.StudentID,
		FullName: fullName.String,
		Role:     role,
	})
}

// ListVoters handles GET /admin/students
func (h *AdminHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, student_id, full_name, email, program, year_of_study, has_voted, active, created_at
		FROM voters
		ORDER BY student_id
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.StudentID, &v.FullName, &v.Email, &v.Program,
			&v.YearOfStudy, &v.HasVoted, &v.Active, &v.CreatedAt); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// CreateVoter handles POST /admin/students
func (h *AdminHandler) CreateVoter(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.StudentID == "" || req.FullName == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id, full_name and password are required")
		return
	}

	id := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO voters (id, student_id, full_name, email, program, year_of_study, password_hash, has_voted, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)
	`, id, req.StudentID, req.FullName, req.Email, req.Program, req.YearOfStudy,
		auth.HashCredential(req.Password), activeOrDefault(req.Active), time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert voter", "error", err, "student_id", req.StudentID)
		middleware.ErrorResponse(w, http.StatusConflict, "Failed to create student (duplicate student_id?)")
		return
	}

	slog.Info("voter enrolled", "voter_id", id, "student_id", req.StudentID)
	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateVoter handles PUT /admin/students/{id}
// has_voted is deliberately not updatable here: the flag is owned by the
// commit engine and monotonic.
func (h *AdminHandler) UpdateVoter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.CreateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.StudentID == "" || req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and full_name are required")
		return
	}

	// COALESCE keeps the stored active flag when the request omits it; a nil
	// *bool binds as NULL.
	var err error
	var res sql.Result
	if req.Password != "" {
		res, err = h.db.Exec(`
			UPDATE voters SET student_id = $1, full_name = $2, email = $3, program = $4,
				year_of_study = $5, password_hash = $6, active = COALESCE($7, active)
			WHERE id = $8
		`, req.StudentID, req.FullName, req.Email, req.Program, req.YearOfStudy,
			auth.HashCredential(req.Password), req.Active, id)
	} else {
		res, err = h.db.Exec(`
			UPDATE voters SET student_id = $1, full_name = $2, email = $3, program = $4,
				year_of_study = $5, active = COALESCE($6, active)
			WHERE id = $7
		`, req.StudentID, req.FullName, req.Email, req.Program, req.YearOfStudy,
			req.Active, id)
	}
	if err != nil {
		slog.Error("failed to update voter", "error", err, "voter_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Student not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Student updated"})
}

// DeleteVoter handles DELETE /admin/students/{id}
func (h *AdminHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, "voters", r.PathValue("id"), "Student")
}

// ListPositions handles GET /admin/positions
func (h *AdminHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description, display_order, active
		FROM positions
		ORDER BY display_order
	`)
	if err != nil {
		slog.Error("failed to query positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.DisplayOrder, &p.Active); err != nil {
			slog.Error("failed to scan position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, positions)
}

// CreatePosition handles POST /admin/positions
func (h *AdminHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	id := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO positions (id, name, description, display_order, active)
		VALUES ($1, $2, $3, $4, $5)
	`, id, req.Name, req.Description, req.DisplayOrder, activeOrDefault(req.Active))
	if err != nil {
		slog.Error("failed to insert position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create position")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdatePosition handles PUT /admin/positions/{id}
func (h *AdminHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.CreatePositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE positions SET name = $1, description = $2, display_order = $3,
			active = COALESCE($4, active)
		WHERE id = $5
	`, req.Name, req.Description, req.DisplayOrder, req.Active, id)
	if err != nil {
		slog.Error("failed to update position", "error", err, "position_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Position not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Position updated"})
}

// DeletePosition handles DELETE /admin/positions/{id}
// Cascades to candidates and ledger rows via foreign keys.
func (h *AdminHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, "positions", r.PathValue("id"), "Position")
}

// ListCandidates handles GET /admin/candidates
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT c.id, c.position_id, c.name, c.student_id, c.program, c.year_of_study, c.active
		FROM candidates c
		LEFT JOIN positions p ON c.position_id = p.id
		ORDER BY p.display_order, c.name
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.PositionID, &c.Name, &c.StudentID, &c.Program,
			&c.YearOfStudy, &c.Active); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// CreateCandidate handles POST /admin/candidates
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.PositionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and position_id are required")
		return
	}

	id := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO candidates (id, position_id, name, student_id, program, year_of_study, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, req.PositionID, req.Name, req.StudentID, req.Program, req.YearOfStudy,
		activeOrDefault(req.Active))
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to create candidate (unknown position?)")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateCandidate handles PUT /admin/candidates/{id}
func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.PositionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and position_id are required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE candidates SET position_id = $1, name = $2, student_id = $3, program = $4,
			year_of_study = $5, active = COALESCE($6, active)
		WHERE id = $7
	`, req.PositionID, req.Name, req.StudentID, req.Program, req.YearOfStudy,
		req.Active, id)
	if err != nil {
		slog.Error("failed to update candidate", "error", err, "candidate_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Candidate updated"})
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, "candidates", r.PathValue("id"), "Candidate")
}

// ListSettings handles GET /admin/settings
func (h *AdminHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id, name, value, description FROM election_settings ORDER BY name`)
	if err != nil {
		slog.Error("failed to query settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.ID, &s.Name, &s.Value, &s.Description); err != nil {
			slog.Error("failed to scan setting", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, settings)
}

// CreateSetting handles POST /admin/settings
func (h *AdminHandler) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSettingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.Value == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and value are required")
		return
	}

	id := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO election_settings (id, name, value, description)
		VALUES ($1, $2, $3, $4)
	`, id, req.Name, req.Value, req.Description)
	if err != nil {
		slog.Error("failed to insert setting", "error", err)
		middleware.ErrorResponse(w, http.StatusConflict, "Failed to create setting (duplicate name?)")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateSetting handles PUT /admin/settings/{id}
func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.CreateSettingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Value == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE election_settings SET value = $1, description = $2 WHERE id = $3
	`, req.Value, req.Description, id)
	if err != nil {
		slog.Error("failed to update setting", "error", err, "setting_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Setting not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Setting updated"})
}

// DeleteSetting handles DELETE /admin/settings/{id}
func (h *AdminHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, "election_settings", r.PathValue("id"), "Setting")
}

// ListAdminUsers handles GET /admin/users
func (h *AdminHandler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, username, email, full_name, role, active FROM admin_users ORDER BY username
	`)
	if err != nil {
		slog.Error("failed to query admin users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Role, &u.Active); err != nil {
			slog.Error("failed to scan admin user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read admin users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// CreateAdminUser handles POST /admin/users
func (h *AdminHandler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}
	role := req.Role
	if role == "" {
		role = "admin"
	}

	id := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO admin_users (id, username, email, password_hash, full_name, role, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, req.Username, req.Email, auth.HashCredential(req.Password), req.FullName,
		role, activeOrDefault(req.Active))
	if err != nil {
		slog.Error("failed to insert admin user", "error", err)
		middleware.ErrorResponse(w, http.StatusConflict, "Failed to create admin user (duplicate username?)")
		return
	}

	slog.Info("admin user created", "username", req.Username, "role", role)
	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateAdminUser handles PUT /admin/users/{id}
// An empty password leaves the stored credential unchanged.
func (h *AdminHandler) UpdateAdminUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.CreateAdminUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	role := req.Role
	if role == "" {
		role = "admin"
	}

	var err error
	var res sql.Result
	if req.Password != "" {
		res, err = h.db.Exec(`
			UPDATE admin_users SET username = $1, email = $2, full_name = $3, role = $4,
				password_hash = $5, active = COALESCE($6, active)
			WHERE id = $7
		`, req.Username, req.Email, req.FullName, role,
			auth.HashCredential(req.Password), req.Active, id)
	} else {
		res, err = h.db.Exec(`
			UPDATE admin_users SET username = $1, email = $2, full_name = $3, role = $4,
				active = COALESCE($5, active)
			WHERE id = $6
		`, req.Username, req.Email, req.FullName, role, req.Active, id)
	}
	if err != nil {
		slog.Error("failed to update admin user", "error", err, "admin_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Admin user not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Admin user updated"})
}

// DeleteAdminUser handles DELETE /admin/users/{id}
func (h *AdminHandler) DeleteAdminUser(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, "admin_users", r.PathValue("id"), "Admin user")
}

// deleteByID removes one row by primary key from a fixed table name.
func (h *AdminHandler) deleteByID(w http.ResponseWriter, table, id, label string) {
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete row", "error", err, "table", table, "id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, label+" not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": label + " deleted"})
}
