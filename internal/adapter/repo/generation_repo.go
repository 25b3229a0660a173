package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flatify/internal/domain"
	"flatify/internal/infra"
	"flatify/internal/sqlinline"
	"flatify/pkg/datauri"
)

// GenerationRepositoryPG implements domain.GenerationRepository with one
// table per kind.
type GenerationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewGenerationRepository constructs a generation repository.
func NewGenerationRepository(sql infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{sql: sql}
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)

// Create validates and stores gen. Saving a record identical to one the owner
// already has returns the stored record and created == false.
func (r *GenerationRepositoryPG) Create(ctx context.Context, gen domain.Generation) (domain.Generation, bool, error) {
	if err := validateGeneration(gen); err != nil {
		return domain.Generation{}, false, err
	}
	owner := gen.Owner()
	fp := fingerprint(gen)

	var row pgx.Row
	switch gen.Kind {
	case domain.KindNovice:
		g := gen.Novice
		row = r.sql.QueryRow(ctx, sqlinline.QInsertNoviceGeneration,
			owner, g.BusinessName, g.BusinessDescription, g.PrimaryColor, g.SecondaryColor, g.LogoDataURI, fp)
	case domain.KindProfessional:
		g := gen.Professional
		row = r.sql.QueryRow(ctx, sqlinline.QInsertProfessionalGeneration,
			owner, g.OriginalPrompt, g.RefinedPrompt, g.UsedPrompt, g.LogoDataURI, fp)
	case domain.KindImageEditor:
		g := gen.ImageEditor
		row = r.sql.QueryRow(ctx, sqlinline.QInsertImageEditorGeneration,
			owner, g.SourceImageURI, g.SourceImageOriginalName, g.BusinessName, g.BusinessDescription, g.LogoDataURI, fp)
	}

	var (
		id        string
		createdAt time.Time
		created   bool
	)
	if err := row.Scan(&id, &createdAt, &created); err != nil {
		return domain.Generation{}, false, fmt.Errorf("insert %s generation: %w", gen.Kind, err)
	}

	out := cloneGeneration(gen)
	switch out.Kind {
	case domain.KindNovice:
		out.Novice.ID, out.Novice.CreatedAt = id, createdAt
	case domain.KindProfessional:
		out.Professional.ID, out.Professional.CreatedAt = id, createdAt
	case domain.KindImageEditor:
		out.ImageEditor.ID, out.ImageEditor.CreatedAt = id, createdAt
	}
	return out, created, nil
}

// ListByOwner returns the owner's records of kind, newest first.
func (r *GenerationRepositoryPG) ListByOwner(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Generation, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, domain.ErrInvalidOwnerID
	}

	var query string
	switch kind {
	case domain.KindNovice:
		query = sqlinline.QListNoviceGenerations
	case domain.KindProfessional:
		query = sqlinline.QListProfessionalGenerations
	case domain.KindImageEditor:
		query = sqlinline.QListImageEditorGenerations
	default:
		return nil, fmt.Errorf("%w: unknown generation kind %q", domain.ErrValidation, kind)
	}

	rows, err := r.sql.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s generations: %w", kind, err)
	}
	defer rows.Close()

	out := make([]domain.Generation, 0)
	for rows.Next() {
		gen, err := scanGeneration(kind, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndOwner removes at most one record. A missing record and a
// record owned by someone else are reported the same way.
func (r *GenerationRepositoryPG) DeleteByIDAndOwner(ctx context.Context, kind domain.Kind, id, ownerID string) error {
	if _, err := uuid.Parse(ownerID); err != nil {
		return domain.ErrInvalidOwnerID
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFoundOrForbidden
	}

	var query string
	switch kind {
	case domain.KindNovice:
		query = sqlinline.QDeleteNoviceGeneration
	case domain.KindProfessional:
		query = sqlinline.QDeleteProfessionalGeneration
	case domain.KindImageEditor:
		query = sqlinline.QDeleteImageEditorGeneration
	default:
		return fmt.Errorf("%w: unknown generation kind %q", domain.ErrValidation, kind)
	}

	tag, err := r.sql.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete %s generation: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFoundOrForbidden
	}
	return nil
}

func scanGeneration(kind domain.Kind, row pgx.Row) (domain.Generation, error) {
	switch kind {
	case domain.KindNovice:
		var g domain.NoviceGeneration
		if err := row.Scan(&g.ID, &g.UserID, &g.BusinessName, &g.BusinessDescription, &g.PrimaryColor, &g.SecondaryColor, &g.LogoDataURI, &g.CreatedAt); err != nil {
			return domain.Generation{}, err
		}
		return domain.Generation{Kind: kind, Novice: &g}, nil
	case domain.KindProfessional:
		var g domain.ProfessionalGeneration
		if err := row.Scan(&g.ID, &g.UserID, &g.OriginalPrompt, &g.RefinedPrompt, &g.UsedPrompt, &g.LogoDataURI, &g.CreatedAt); err != nil {
			return domain.Generation{}, err
		}
		return domain.Generation{Kind: kind, Professional: &g}, nil
	default:
		var g domain.ImageEditorGeneration
		if err := row.Scan(&g.ID, &g.UserID, &g.SourceImageURI, &g.SourceImageOriginalName, &g.BusinessName, &g.BusinessDescription, &g.LogoDataURI, &g.CreatedAt); err != nil {
			return domain.Generation{}, err
		}
		return domain.Generation{Kind: domain.KindImageEditor, ImageEditor: &g}, nil
	}
}

func validateGeneration(gen domain.Generation) error {
	var missing []string
	require := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	switch gen.Kind {
	case domain.KindNovice:
		if gen.Novice == nil {
			return fmt.Errorf("%w: novice record is required", domain.ErrValidation)
		}
		g := gen.Novice
		require("userId", g.UserID)
		require("businessName", g.BusinessName)
		require("businessDescription", g.BusinessDescription)
		require("logoDataUri", g.LogoDataURI)
	case domain.KindProfessional:
		if gen.Professional == nil {
			return fmt.Errorf("%w: professional record is required", domain.ErrValidation)
		}
		g := gen.Professional
		require("userId", g.UserID)
		require("usedPrompt", g.UsedPrompt)
		require("logoDataUri", g.LogoDataURI)
	case domain.KindImageEditor:
		if gen.ImageEditor == nil {
			return fmt.Errorf("%w: image-editor record is required", domain.ErrValidation)
		}
		g := gen.ImageEditor
		require("userId", g.UserID)
		require("sourceImageUri", g.SourceImageURI)
		require("businessName", g.BusinessName)
		require("businessDescription", g.BusinessDescription)
		require("logoDataUri", g.LogoDataURI)
	default:
		return fmt.Errorf("%w: unknown generation kind %q", domain.ErrValidation, gen.Kind)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if _, err := uuid.Parse(gen.Owner()); err != nil {
		return domain.ErrInvalidOwnerID
	}
	if err := datauri.Validate(gen.LogoDataURI()); err != nil {
		return fmt.Errorf("%w: logoDataUri: %v", domain.ErrValidation, err)
	}
	if gen.Kind == domain.KindImageEditor {
		if err := datauri.Validate(gen.ImageEditor.SourceImageURI); err != nil {
			return fmt.Errorf("%w: sourceImageUri: %v", domain.ErrValidation, err)
		}
	}
	return nil
}

// fingerprint hashes the user-supplied content of a record so identical
// re-saves collapse onto one row.
func fingerprint(gen domain.Generation) string {
	var parts []string
	switch gen.Kind {
	case domain.KindNovice:
		g := gen.Novice
		parts = []string{g.BusinessName, g.BusinessDescription, g.PrimaryColor, g.SecondaryColor, g.LogoDataURI}
	case domain.KindProfessional:
		g := gen.Professional
		parts = []string{g.OriginalPrompt, g.RefinedPrompt, g.UsedPrompt, g.LogoDataURI}
	case domain.KindImageEditor:
		g := gen.ImageEditor
		parts = []string{g.SourceImageURI, g.SourceImageOriginalName, g.BusinessName, g.BusinessDescription, g.LogoDataURI}
	}
	sum := sha256.Sum256([]byte(string(gen.Kind) + "\x00" + strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

func cloneGeneration(gen domain.Generation) domain.Generation {
	out := domain.Generation{Kind: gen.Kind}
	switch {
	case gen.Novice != nil:
		g := *gen.Novice
		out.Novice = &g
	case gen.Professional != nil:
		g := *gen.Professional
		out.Professional = &g
	case gen.ImageEditor != nil:
		g := *gen.ImageEditor
		out.ImageEditor = &g
	}
	return out
}
