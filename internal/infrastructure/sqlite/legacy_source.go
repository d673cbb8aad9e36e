package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/runnersutah/pipetrack-api/internal/application/legacyimport"
)

var _ legacyimport.LegacySource = (*LegacySource)(nil)

// LegacySource lee el snapshot heredado (old_processed.sqlite3): las tablas
// users, products y store de la aplicación vieja. Cada fila de store se
// devuelve aplanada con los datos de su producto y su cliente. En la BD vieja
// el rack vive en la columna coating del producto; la columna rack de store
// solo se usa como respaldo.
type LegacySource struct {
	db *sql.DB
}

// Open abre el snapshot en modo solo lectura.
func Open(path string) (*LegacySource, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open legacy snapshot: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping legacy snapshot: %w", err)
	}
	return &LegacySource{db: db}, nil
}

// Close cierra la conexión al snapshot.
func (s *LegacySource) Close() error {
	return s.db.Close()
}

// Rows devuelve todas las filas de store aplanadas, en orden cronológico.
func (s *LegacySource) Rows(ctx context.Context) ([]legacyimport.LegacyRow, error) {
	query := `
		SELECT
			COALESCE(p.end_type, ''),
			COALESCE(u.display_name, ''),
			COALESCE(NULLIF(p.coating, ''), st.rack, ''),
			COALESCE(st.c_date, ''),
			COALESCE(st.joints_in, ''),
			COALESCE(st.joints_out, ''),
			COALESCE(st.footage, ''),
			COALESCE(p.grade, ''),
			COALESCE(p.od, ''),
			COALESCE(p.weight, ''),
			COALESCE(st.rr, ''),
			COALESCE(st.po, ''),
			COALESCE(st.afe, ''),
			COALESCE(st.carrier, ''),
			COALESCE(st.received_transferred, ''),
			COALESCE(st.manufacturer, '')
		FROM store st
		LEFT JOIN products p ON p.product_id = st.product_id
		LEFT JOIN users u ON u.user_id = st.customer_id
		ORDER BY st.c_date, st.inventory_id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query legacy store: %w", err)
	}
	defer rows.Close()

	var list []legacyimport.LegacyRow
	for rows.Next() {
		var r legacyimport.LegacyRow
		err := rows.Scan(
			&r.Kind, &r.Customer, &r.Rack, &r.Date,
			&r.JointsIn, &r.JointsOut, &r.Footage,
			&r.Grade, &r.OutsideDiameter, &r.Weight,
			&r.RR, &r.PO, &r.AFE, &r.Carrier,
			&r.ReceivedTransferred, &r.Manufacturer,
		)
		if err != nil {
			return nil, fmt.Errorf("scan legacy row: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
