package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/lib/pq"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/tx"
)

// ServiceInformationStore implements ports.ServiceInformationManager over
// the service_metadata, process and endpoint tables.
type ServiceInformationStore struct {
	base
}

var _ ports.ServiceInformationManager = (*ServiceInformationStore)(nil)

func NewServiceInformationStore(db *sql.DB) *ServiceInformationStore {
	return &ServiceInformationStore{base{db: db}}
}

// Merge replaces the stored processes of the pair with those of info.
func (s *ServiceInformationStore) Merge(ctx context.Context, info *models.ServiceInformation) (models.Change, error) {
	change := models.Unchanged
	err := s.inTx(ctx, "merge service information", func(ctx context.Context) error {
		if err := s.lockGroup(ctx, info.ParticipantID); err != nil {
			return err
		}
		if redirected, err := redirectExists(ctx, s.q(ctx), info.ParticipantID, info.DocumentTypeID); err != nil {
			return err
		} else if redirected {
			return dErrors.Newf(dErrors.CodeConflict,
				"a redirect exists for %s and document type %s", info.ParticipantID, info.DocumentTypeID)
		}

		existing, err := s.load(ctx, infoFilter{storageIDs: []string{info.ParticipantID.StorageID()}, docType: &info.DocumentTypeID})
		if err != nil {
			return err
		}
		if len(existing) == 1 && sameInformation(existing[0], info) {
			return nil
		}
		if _, err := s.q(ctx).ExecContext(ctx, `
			DELETE FROM service_metadata WHERE storage_id = $1 AND doctype_scheme = $2 AND doctype_value = $3`,
			info.ParticipantID.StorageID(), info.DocumentTypeID.Scheme, info.DocumentTypeID.Value); err != nil {
			return err
		}
		if err := insertInformation(ctx, s.q(ctx), info); err != nil {
			return err
		}
		change = models.Changed
		return nil
	})
	return change, err
}

func (s *ServiceInformationStore) Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.ServiceInformation, error) {
	infos, err := s.load(ctx, infoFilter{storageIDs: []string{pid.StorageID()}, docType: &docType})
	if err != nil {
		return nil, translate("get service information", err)
	}
	if len(infos) == 0 {
		return nil, nil
	}
	return infos[0], nil
}

func (s *ServiceInformationStore) ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.ServiceInformation, error) {
	infos, err := s.load(ctx, infoFilter{storageIDs: []string{pid.StorageID()}})
	return infos, translate("list service information", err)
}

func (s *ServiceInformationStore) List(ctx context.Context) ([]*models.ServiceInformation, error) {
	infos, err := s.load(ctx, infoFilter{})
	return infos, translate("list service information", err)
}

func (s *ServiceInformationStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "count service information", `SELECT COUNT(*) FROM service_metadata`)
}

func (s *ServiceInformationStore) Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error) {
	return s.exec(ctx, "delete service information", `
		DELETE FROM service_metadata WHERE storage_id = $1 AND doctype_scheme = $2 AND doctype_value = $3`,
		pid.StorageID(), docType.Scheme, docType.Value)
}

func (s *ServiceInformationStore) DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	return s.exec(ctx, "delete service information of group",
		`DELETE FROM service_metadata WHERE storage_id = $1`, pid.StorageID())
}

func (s *ServiceInformationStore) ContainsEndpointWithTransportProfile(ctx context.Context, profileID string) (bool, error) {
	var used bool
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM endpoint WHERE transport_profile = $1)`, profileID).Scan(&used)
	if err != nil {
		return false, translate("check transport profile usage", err)
	}
	return used, nil
}

// infoFilter narrows load. Empty fields match everything.
type infoFilter struct {
	storageIDs []string
	docType    *id.DocumentTypeID
}

func docKey(storageID, scheme, value string) string {
	return storageID + "\x00" + scheme + id.URISeparator + value
}

func processKey(doc, scheme, value string) string {
	return doc + "\x00" + scheme + id.URISeparator + value
}

// load assembles service information from its three tables in three queries.
func (s *ServiceInformationStore) load(ctx context.Context, f infoFilter) ([]*models.ServiceInformation, error) {
	q := s.q(ctx)

	var (
		where []string
		args  []any
	)
	if f.storageIDs != nil {
		args = append(args, pq.Array(f.storageIDs))
		where = append(where, "m.storage_id = ANY($1::text[])")
	}
	if f.docType != nil {
		args = append(args, f.docType.Scheme, f.docType.Value)
		where = append(where, "m.doctype_scheme = $2", "m.doctype_value = $3")
	}
	query := `
		SELECT m.storage_id, g.participant_scheme, g.participant_value, m.doctype_scheme, m.doctype_value, m.extensions
		FROM service_metadata m JOIN servicegroup g ON g.storage_id = m.storage_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.storage_id, m.doctype_scheme, m.doctype_value"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	infos := []*models.ServiceInformation{}
	byDoc := map[string]*models.ServiceInformation{}
	var storageIDs []string
	for rows.Next() {
		var (
			info      models.ServiceInformation
			storageID string
			ext       string
		)
		if err := rows.Scan(&storageID, &info.ParticipantID.Scheme, &info.ParticipantID.Value,
			&info.DocumentTypeID.Scheme, &info.DocumentTypeID.Value, &ext); err != nil {
			rows.Close()
			return nil, err
		}
		if info.Extensions, err = models.DecodeExtensions(ext); err != nil {
			rows.Close()
			return nil, err
		}
		info.Processes = []models.Process{}
		infos = append(infos, &info)
		byDoc[docKey(storageID, info.DocumentTypeID.Scheme, info.DocumentTypeID.Value)] = &info
		if len(storageIDs) == 0 || storageIDs[len(storageIDs)-1] != storageID {
			storageIDs = append(storageIDs, storageID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return infos, nil
	}

	processes, err := loadProcesses(ctx, q, storageIDs, byDoc)
	if err != nil {
		return nil, err
	}
	if err := loadEndpoints(ctx, q, storageIDs, byDoc, processes); err != nil {
		return nil, err
	}
	return infos, nil
}

// processRef locates a loaded process inside its service information.
type processRef struct {
	info  *models.ServiceInformation
	index int
}

func loadProcesses(ctx context.Context, q tx.Querier, storageIDs []string, byDoc map[string]*models.ServiceInformation) (map[string]processRef, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT storage_id, doctype_scheme, doctype_value, process_scheme, process_value, extensions
		FROM process WHERE storage_id = ANY($1::text[])
		ORDER BY storage_id, doctype_scheme, doctype_value, position`, pq.Array(storageIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := map[string]processRef{}
	for rows.Next() {
		var (
			storageID, docScheme, docValue string
			p                              models.Process
			ext                            string
		)
		if err := rows.Scan(&storageID, &docScheme, &docValue, &p.ProcessID.Scheme, &p.ProcessID.Value, &ext); err != nil {
			return nil, err
		}
		doc := docKey(storageID, docScheme, docValue)
		info, ok := byDoc[doc]
		if !ok {
			continue
		}
		if p.Extensions, err = models.DecodeExtensions(ext); err != nil {
			return nil, err
		}
		p.Endpoints = []models.Endpoint{}
		info.Processes = append(info.Processes, p)
		refs[processKey(doc, p.ProcessID.Scheme, p.ProcessID.Value)] = processRef{info: info, index: len(info.Processes) - 1}
	}
	return refs, rows.Err()
}

func loadEndpoints(ctx context.Context, q tx.Querier, storageIDs []string, byDoc map[string]*models.ServiceInformation, refs map[string]processRef) error {
	rows, err := q.QueryContext(ctx, `
		SELECT storage_id, doctype_scheme, doctype_value, process_scheme, process_value,
		       transport_profile, endpoint_reference, require_business_level_signature,
		       minimum_authentication_level, service_activation, service_expiration, certificate,
		       service_description, technical_contact_url, technical_information_url, extensions
		FROM endpoint WHERE storage_id = ANY($1::text[])
		ORDER BY storage_id, doctype_scheme, doctype_value, process_scheme, process_value, position`, pq.Array(storageIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			storageID, docScheme, docValue, procScheme, procValue string
			ep                                                    models.Endpoint
			activation, expiration                                sql.NullTime
			ext                                                   string
		)
		if err := rows.Scan(&storageID, &docScheme, &docValue, &procScheme, &procValue,
			&ep.TransportProfile, &ep.EndpointReference, &ep.RequireBusinessLevelSignature,
			&ep.MinimumAuthenticationLevel, &activation, &expiration, &ep.Certificate,
			&ep.ServiceDescription, &ep.TechnicalContactURL, &ep.TechnicalInformationURL, &ext); err != nil {
			return err
		}
		ref, ok := refs[processKey(docKey(storageID, docScheme, docValue), procScheme, procValue)]
		if !ok {
			continue
		}
		ep.ServiceActivation = timePtr(activation)
		ep.ServiceExpiration = timePtr(expiration)
		if ep.Extensions, err = models.DecodeExtensions(ext); err != nil {
			return err
		}
		p := &ref.info.Processes[ref.index]
		p.Endpoints = append(p.Endpoints, ep)
	}
	return rows.Err()
}

func insertInformation(ctx context.Context, q tx.Querier, info *models.ServiceInformation) error {
	storageID := info.ParticipantID.StorageID()
	doc := info.DocumentTypeID
	ext, err := encodeExtensions(info.Extensions)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `
		INSERT INTO service_metadata (storage_id, doctype_scheme, doctype_value, extensions)
		VALUES ($1, $2, $3, $4)`, storageID, doc.Scheme, doc.Value, ext); err != nil {
		return err
	}

	for pi, p := range info.Processes {
		ext, err := encodeExtensions(p.Extensions)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `
			INSERT INTO process (storage_id, doctype_scheme, doctype_value, process_scheme, process_value, position, extensions)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			storageID, doc.Scheme, doc.Value, p.ProcessID.Scheme, p.ProcessID.Value, pi, ext); err != nil {
			return err
		}
		for ei, ep := range p.Endpoints {
			ext, err := encodeExtensions(ep.Extensions)
			if err != nil {
				return err
			}
			if _, err := q.ExecContext(ctx, `
				INSERT INTO endpoint (storage_id, doctype_scheme, doctype_value, process_scheme, process_value,
				    transport_profile, position, endpoint_reference, require_business_level_signature,
				    minimum_authentication_level, service_activation, service_expiration, certificate,
				    service_description, technical_contact_url, technical_information_url, extensions)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
				storageID, doc.Scheme, doc.Value, p.ProcessID.Scheme, p.ProcessID.Value,
				ep.TransportProfile, ei, ep.EndpointReference, ep.RequireBusinessLevelSignature,
				ep.MinimumAuthenticationLevel, nullTime(ep.ServiceActivation), nullTime(ep.ServiceExpiration), ep.Certificate,
				ep.ServiceDescription, ep.TechnicalContactURL, ep.TechnicalInformationURL, ext); err != nil {
				return err
			}
		}
	}
	return nil
}

// sameInformation compares the stored form of two service information
// values: participant spelling is ignored, timestamps are compared in UTC at
// database precision and empty lists equal absent ones.
func sameInformation(a, b *models.ServiceInformation) bool {
	ca, errA := json.Marshal(canonicalInformation(a))
	cb, errB := json.Marshal(canonicalInformation(b))
	return errA == nil && errB == nil && bytes.Equal(ca, cb)
}

func canonicalInformation(si *models.ServiceInformation) models.ServiceInformation {
	out := models.ServiceInformation{
		DocumentTypeID: si.DocumentTypeID,
		Extensions:     nilIfEmpty(si.Extensions),
	}
	for _, p := range si.Processes {
		cp := models.Process{ProcessID: p.ProcessID, Extensions: nilIfEmpty(p.Extensions)}
		for _, ep := range p.Endpoints {
			ep.ServiceActivation = canonicalTime(ep.ServiceActivation)
			ep.ServiceExpiration = canonicalTime(ep.ServiceExpiration)
			ep.Extensions = nilIfEmpty(ep.Extensions)
			cp.Endpoints = append(cp.Endpoints, ep)
		}
		out.Processes = append(out.Processes, cp)
	}
	return out
}

func canonicalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}

func nilIfEmpty(ext models.Extensions) models.Extensions {
	if len(ext) == 0 {
		return nil
	}
	return ext
}
