package repo

import (
	"context"
	"database/sql"
	"time"

	fluids "Wellcore/internal/calc/fluids"
	geometry "Wellcore/internal/calc/geometry"
	rheology "Wellcore/internal/calc/rheology"
	swabsurge "Wellcore/internal/calc/swabsurge"

	"github.com/google/uuid"
)

// Project is the aggregate the engine computes from: a fully-materialized,
// read-only snapshot of geometry, fluids and the pressure window.
type Project struct {
	ID        string                        `json:"id"`
	OwnerID   int                           `json:"owner_id"`
	Name      string                        `json:"name"`
	Strings   []geometry.DrillStringSection `json:"strings"`
	Annulus   []geometry.AnnulusSection     `json:"annulus"`
	Layers    []fluids.Layer                `json:"layers"`
	Muds      []rheology.MudProperties      `json:"muds"`
	Window    swabsurge.PressureWindow      `json:"window"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

type ProjectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)

	CreateProject(ctx context.Context, ownerID int, name string) (string, error)
	ListProjects(ctx context.Context, ownerID int) ([]ProjectSummary, error)
	GetProject(ctx context.Context, ownerID int, id string) (Project, error)
	SaveProject(ctx context.Context, p Project) error
	DeleteProject(ctx context.Context, ownerID int, id string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, ownerID int, name string) (string, error) {
	id := uuid.NewString()
	query := "INSERT INTO projects (id, owner_id, name, updated_at) VALUES ($1, $2, $3, now())"
	_, err := r.db.ExecContext(ctx, query, id, ownerID, name)
	return id, err
}

func (r *PostgresRepository) ListProjects(ctx context.Context, ownerID int) ([]ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, updated_at FROM projects WHERE owner_id=$1 ORDER BY updated_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectSummary
	for rows.Next() {
		var p ProjectSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetProject(ctx context.Context, ownerID int, id string) (Project, error) {
	var p Project
	query := "SELECT id, owner_id, name, pore_margin_kpa, frac_margin_kpa, updated_at FROM projects WHERE id=$1 AND owner_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Window.PoreMarginKPa, &p.Window.FracMarginKPa, &p.UpdatedAt)
	if err != nil {
		return Project{}, err
	}

	if p.Strings, err = r.loadStrings(ctx, id); err != nil {
		return Project{}, err
	}
	if p.Annulus, err = r.loadAnnulus(ctx, id); err != nil {
		return Project{}, err
	}
	if p.Muds, err = r.loadMuds(ctx, id); err != nil {
		return Project{}, err
	}
	if p.Layers, err = r.loadLayers(ctx, id, p.Muds); err != nil {
		return Project{}, err
	}
	if p.Window.Points, err = r.loadWindowPoints(ctx, id); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (r *PostgresRepository) loadStrings(ctx context.Context, projectID string) ([]geometry.DrillStringSection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, top_depth_m, length_m, outer_diameter_m, inner_diameter_m FROM drill_string_sections WHERE project_id=$1 ORDER BY ord", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []geometry.DrillStringSection
	for rows.Next() {
		var s geometry.DrillStringSection
		if err := rows.Scan(&s.ID, &s.Name, &s.TopDepthM, &s.LengthM, &s.OuterDiameterM, &s.InnerDiameterM); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) loadAnnulus(ctx context.Context, projectID string) ([]geometry.AnnulusSection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, top_depth_m, length_m, inner_diameter_m, outer_diameter_m FROM annulus_sections WHERE project_id=$1 ORDER BY ord", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []geometry.AnnulusSection
	for rows.Next() {
		var a geometry.AnnulusSection
		if err := rows.Scan(&a.ID, &a.Name, &a.TopDepthM, &a.LengthM, &a.InnerDiameterM, &a.OuterDiameterM); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) loadMuds(ctx context.Context, projectID string) ([]rheology.MudProperties, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, density_kg_m3, pv_mpa_s, yp_pa, theta600, theta300, is_active FROM mud_properties WHERE project_id=$1 ORDER BY name", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rheology.MudProperties
	for rows.Next() {
		var m rheology.MudProperties
		if err := rows.Scan(&m.ID, &m.Name, &m.DensityKgM3, &m.PVmPaS, &m.YPPa, &m.Theta600, &m.Theta300, &m.IsActive); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) loadLayers(ctx context.Context, projectID string, muds []rheology.MudProperties) ([]fluids.Layer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, placement, top_md_m, bottom_md_m, density_kg_m3, label, mud_id FROM fluid_layers WHERE project_id=$1 ORDER BY ord", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fluids.Layer
	for rows.Next() {
		var l fluids.Layer
		var mudID sql.NullString
		if err := rows.Scan(&l.ID, &l.Placement, &l.TopMDm, &l.BottomMDm, &l.DensityKgM3, &l.Label, &mudID); err != nil {
			return nil, err
		}
		if mudID.Valid {
			for i := range muds {
				if muds[i].ID == mudID.String {
					l.Mud = &muds[i]
					break
				}
			}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) loadWindowPoints(ctx context.Context, projectID string) ([]swabsurge.PressureWindowPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT depth_m, pore_kpa, frac_kpa FROM pressure_window_points WHERE project_id=$1 ORDER BY depth_m", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []swabsurge.PressureWindowPoint
	for rows.Next() {
		var p swabsurge.PressureWindowPoint
		if err := rows.Scan(&p.DepthM, &p.PoreKPa, &p.FracKPa); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveProject replaces the whole aggregate in one transaction. Child rows
// keep the caller's order through the ord column.
func (r *PostgresRepository) SaveProject(ctx context.Context, p Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE projects SET name=$1, pore_margin_kpa=$2, frac_margin_kpa=$3, updated_at=now() WHERE id=$4 AND owner_id=$5",
		p.Name, p.Window.PoreMarginKPa, p.Window.FracMarginKPa, p.ID, p.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	for _, table := range []string{"drill_string_sections", "annulus_sections", "fluid_layers", "mud_properties", "pressure_window_points"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id=$1", p.ID); err != nil {
			return err
		}
	}

	for i := range p.Muds {
		if p.Muds[i].ID == "" {
			p.Muds[i].ID = uuid.NewString()
		}
		m := p.Muds[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO mud_properties (id, project_id, name, density_kg_m3, pv_mpa_s, yp_pa, theta600, theta300, is_active) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)",
			m.ID, p.ID, m.Name, m.DensityKgM3, m.PVmPaS, m.YPPa, m.Theta600, m.Theta300, m.IsActive)
		if err != nil {
			return err
		}
	}
	for i, s := range p.Strings {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO drill_string_sections (id, project_id, ord, name, top_depth_m, length_m, outer_diameter_m, inner_diameter_m) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
			s.ID, p.ID, i, s.Name, s.TopDepthM, s.LengthM, s.OuterDiameterM, s.InnerDiameterM)
		if err != nil {
			return err
		}
	}
	for i, a := range p.Annulus {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO annulus_sections (id, project_id, ord, name, top_depth_m, length_m, inner_diameter_m, outer_diameter_m) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
			a.ID, p.ID, i, a.Name, a.TopDepthM, a.LengthM, a.InnerDiameterM, a.OuterDiameterM)
		if err != nil {
			return err
		}
	}
	for i, l := range p.Layers {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		var mudID any
		if l.Mud != nil && l.Mud.ID != "" {
			mudID = l.Mud.ID
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO fluid_layers (id, project_id, ord, placement, top_md_m, bottom_md_m, density_kg_m3, label, mud_id) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)",
			l.ID, p.ID, i, l.Placement, l.TopMDm, l.BottomMDm, l.DensityKgM3, l.Label, mudID)
		if err != nil {
			return err
		}
	}
	for _, pt := range p.Window.Points {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO pressure_window_points (project_id, depth_m, pore_kpa, frac_kpa) VALUES ($1,$2,$3,$4)",
			p.ID, pt.DepthM, pt.PoreKPa, pt.FracKPa)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, ownerID int, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND owner_id=$2", id, ownerID)
	return err
}
