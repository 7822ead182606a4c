package postgres

const (
	kindKey    = "key"
	kindVertex = "vertex"
	kindEdge   = "edge"
)

var migrations = []string{
	`CREATE SEQUENCE IF NOT EXISTS graphschema_id_seq`,
	`CREATE TABLE IF NOT EXISTS graphschema_elements (
		graph        TEXT    NOT NULL,
		id           BIGINT  NOT NULL DEFAULT nextval('graphschema_id_seq'),
		kind         TEXT    NOT NULL,
		name         TEXT    NOT NULL,
		data_type    TEXT    NOT NULL DEFAULT '',
		cardinality  TEXT    NOT NULL DEFAULT '',
		read_only    BOOLEAN NOT NULL DEFAULT FALSE,
		partitioned  BOOLEAN NOT NULL DEFAULT FALSE,
		multiplicity TEXT    NOT NULL DEFAULT '',
		directed     BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (graph, id),
		CONSTRAINT graphschema_elements_name_key UNIQUE (graph, kind, name)
	)`,
	`CREATE TABLE IF NOT EXISTS graphschema_label_properties (
		graph    TEXT   NOT NULL,
		label_id BIGINT NOT NULL,
		key_id   BIGINT NOT NULL,
		seq      BIGINT NOT NULL DEFAULT nextval('graphschema_id_seq'),
		PRIMARY KEY (graph, label_id, key_id),
		FOREIGN KEY (graph, label_id) REFERENCES graphschema_elements (graph, id),
		FOREIGN KEY (graph, key_id) REFERENCES graphschema_elements (graph, id)
	)`,
	`CREATE TABLE IF NOT EXISTS graphschema_indices (
		graph            TEXT        NOT NULL,
		id               BIGINT      NOT NULL DEFAULT nextval('graphschema_id_seq'),
		name             TEXT        NOT NULL,
		element          TEXT        NOT NULL,
		index_type       TEXT        NOT NULL,
		constraint_id    BIGINT,
		is_unique        BOOLEAN     NOT NULL DEFAULT FALSE,
		backend          TEXT        NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (graph, id),
		CONSTRAINT graphschema_indices_name_key UNIQUE (graph, name),
		FOREIGN KEY (graph, constraint_id) REFERENCES graphschema_elements (graph, id)
	)`,
	`CREATE TABLE IF NOT EXISTS graphschema_index_keys (
		graph    TEXT    NOT NULL,
		index_id BIGINT  NOT NULL,
		position INTEGER NOT NULL,
		key_id   BIGINT  NOT NULL,
		status   TEXT    NOT NULL,
		PRIMARY KEY (graph, index_id, position),
		FOREIGN KEY (graph, index_id) REFERENCES graphschema_indices (graph, id),
		FOREIGN KEY (graph, key_id) REFERENCES graphschema_elements (graph, id)
	)`,
}

const (
	keyColumns   = `id, name, data_type, cardinality`
	labelColumns = `id, name, read_only, partitioned, multiplicity, directed`

	// The constraint label's name is joined in so an index follows a rename
	indexColumns = `i.id, i.name, i.element, i.index_type, COALESCE(i.constraint_id, 0), COALESCE(l.name, ''),
		i.is_unique, i.backend`

	indexFrom = ` FROM graphschema_indices i
		LEFT JOIN graphschema_elements l ON l.graph = i.graph AND l.id = i.constraint_id AND l.kind = i.element`

	getKeySQL = `SELECT ` + keyColumns + ` FROM graphschema_elements
		WHERE graph = $1 AND kind = 'key' AND name = $2`

	listKeysSQL = `SELECT ` + keyColumns + ` FROM graphschema_elements
		WHERE graph = $1 AND kind = 'key' ORDER BY id`

	insertKeySQL = `INSERT INTO graphschema_elements (graph, kind, name, data_type, cardinality)
		VALUES ($1, 'key', $2, $3, $4) RETURNING id`

	getLabelByIDSQL = `SELECT ` + labelColumns + ` FROM graphschema_elements
		WHERE graph = $1 AND kind = $2 AND id = $3`

	getLabelByNameSQL = `SELECT ` + labelColumns + ` FROM graphschema_elements
		WHERE graph = $1 AND kind = $2 AND name = $3`

	listLabelsSQL = `SELECT ` + labelColumns + ` FROM graphschema_elements
		WHERE graph = $1 AND kind = $2 ORDER BY id`

	insertLabelSQL = `INSERT INTO graphschema_elements (graph, kind, name, read_only, partitioned, multiplicity, directed)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	renameLabelSQL = `UPDATE graphschema_elements SET name = $4
		WHERE graph = $1 AND kind = $2 AND id = $3`

	elementExistsSQL = `SELECT EXISTS (SELECT 1 FROM graphschema_elements
		WHERE graph = $1 AND kind = $2 AND id = $3)`

	addPropertySQL = `INSERT INTO graphschema_label_properties (graph, label_id, key_id)
		VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`

	labelPropertiesSQL = `SELECT lp.label_id, e.id, e.name, e.data_type, e.cardinality
		FROM graphschema_label_properties lp
		JOIN graphschema_elements e ON e.graph = lp.graph AND e.id = lp.key_id
		WHERE lp.graph = $1 AND lp.label_id = ANY($2)
		ORDER BY lp.seq`

	insertIndexSQL = `INSERT INTO graphschema_indices (graph, name, element, index_type, constraint_id, is_unique, backend)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	insertIndexKeySQL = `INSERT INTO graphschema_index_keys (graph, index_id, position, key_id, status)
		VALUES ($1, $2, $3, $4, $5)`

	getIndexSQL = `SELECT ` + indexColumns + indexFrom + `
		WHERE i.graph = $1 AND i.name = $2`

	listIndicesSQL = `SELECT ` + indexColumns + indexFrom + `
		WHERE i.graph = $1 AND i.element = $2 ORDER BY i.id`

	indexKeysSQL = `SELECT k.index_id, e.id, e.name, e.data_type, e.cardinality, k.status
		FROM graphschema_index_keys k
		JOIN graphschema_elements e ON e.graph = k.graph AND e.id = k.key_id
		WHERE k.graph = $1 AND k.index_id = ANY($2)
		ORDER BY k.index_id, k.position`

	enableIndexSQL = `UPDATE graphschema_index_keys SET status = 'ENABLED'
		WHERE graph = $1 AND index_id = $2 AND status = 'REGISTERED'`

	promoteInstalledSQL = `UPDATE graphschema_index_keys k SET status = 'REGISTERED'
		FROM graphschema_indices i
		WHERE k.graph = i.graph AND k.index_id = i.id
		  AND i.graph = $1 AND i.name = $2 AND i.index_type = 'composite'
		  AND k.status = 'INSTALLED'
		  AND i.created_at <= now() - make_interval(secs => $3)`

	readinessSQL = `SELECT e.name, k.status
		FROM graphschema_index_keys k
		JOIN graphschema_indices i ON i.graph = k.graph AND i.id = k.index_id
		JOIN graphschema_elements e ON e.graph = k.graph AND e.id = k.key_id
		WHERE i.graph = $1 AND i.name = $2
		ORDER BY k.position`
)
