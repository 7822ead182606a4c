package neo4j

// Catalog nodes carry the graph context name so several contexts can share
// one database. Labels link to their keys through HAS_PROPERTY and indices
// to theirs through INDEXES, which also holds the per-key status. An index
// keeps the id of its constraint label, zero when unconstrained.
var migrations = []string{
	`CREATE CONSTRAINT graphschema_element_name IF NOT EXISTS
		FOR (e:GraphSchemaElement) REQUIRE (e.graph, e.kind, e.name) IS UNIQUE`,
	`CREATE CONSTRAINT graphschema_element_id IF NOT EXISTS
		FOR (e:GraphSchemaElement) REQUIRE (e.graph, e.id) IS UNIQUE`,
	`CREATE CONSTRAINT graphschema_index_name IF NOT EXISTS
		FOR (i:GraphSchemaIndex) REQUIRE (i.graph, i.name) IS UNIQUE`,
	`CREATE CONSTRAINT graphschema_sequence_graph IF NOT EXISTS
		FOR (s:GraphSchemaSequence) REQUIRE s.graph IS UNIQUE`,
}

const (
	keyProjection   = `{.id, .name, .dataType, .cardinality}`
	labelProjection = `{.id, .name, .readOnly, .partitioned, .multiplicity, .directed}`
	indexProjection = `{.id, .name, .element, .type, .constraintId, .unique, .backend, constraintLabel: l.name}`

	nextIDCypher = `MERGE (s:GraphSchemaSequence {graph: $graph})
		ON CREATE SET s.next = 0
		SET s.next = s.next + 1
		RETURN s.next AS id`

	getKeyCypher = `MATCH (k:GraphSchemaElement {graph: $graph, kind: 'key', name: $name})
		RETURN k ` + keyProjection + ` AS key`

	listKeysCypher = `MATCH (k:GraphSchemaElement {graph: $graph, kind: 'key'})
		RETURN k ` + keyProjection + ` AS key ORDER BY k.id`

	createKeyCypher = `CREATE (k:GraphSchemaElement {graph: $graph, kind: 'key', id: $id, name: $name,
		dataType: $dataType, cardinality: $cardinality})`

	createLabelCypher = `CREATE (l:GraphSchemaElement {graph: $graph, kind: $kind, id: $id, name: $name,
		readOnly: $readOnly, partitioned: $partitioned, multiplicity: $multiplicity, directed: $directed})`

	labelWithKeys = `OPTIONAL MATCH (l)-[p:HAS_PROPERTY]->(k:GraphSchemaElement)
		WITH l, p, k ORDER BY l.id, p.seq
		WITH l, collect(k ` + keyProjection + `) AS keys
		RETURN l ` + labelProjection + ` AS label, keys ORDER BY l.id`

	getLabelByIDCypher = `MATCH (l:GraphSchemaElement {graph: $graph, kind: $kind, id: $id}) ` + labelWithKeys

	getLabelByNameCypher = `MATCH (l:GraphSchemaElement {graph: $graph, kind: $kind, name: $name}) ` + labelWithKeys

	listLabelsCypher = `MATCH (l:GraphSchemaElement {graph: $graph, kind: $kind}) ` + labelWithKeys

	renameLabelCypher = `MATCH (l:GraphSchemaElement {graph: $graph, kind: $kind, id: $id})
		SET l.name = $name
		RETURN l.id AS id`

	elementExistsCypher = `OPTIONAL MATCH (e:GraphSchemaElement {graph: $graph, kind: $kind, id: $id})
		RETURN e IS NOT NULL AS found`

	addPropertyCypher = `MATCH (l:GraphSchemaElement {graph: $graph, kind: $kind, id: $labelId})
		MATCH (k:GraphSchemaElement {graph: $graph, kind: 'key', id: $keyId})
		MERGE (l)-[p:HAS_PROPERTY]->(k)
		ON CREATE SET p.seq = $seq`

	createIndexCypher = `CREATE (i:GraphSchemaIndex {graph: $graph, id: $id, name: $name, element: $element,
		type: $type, constraintId: $constraintId, unique: $unique, backend: $backend, createdAt: datetime()})
		WITH i
		UNWIND $keys AS key
		MATCH (k:GraphSchemaElement {graph: $graph, kind: 'key', id: key.id})
		CREATE (i)-[:INDEXES {position: key.position, status: $status}]->(k)`

	indexWithKeys = `MATCH (i)-[r:INDEXES]->(k:GraphSchemaElement)
		WITH i, r, k ORDER BY i.id, r.position
		WITH i, collect(k {.id, .name, .dataType, .cardinality, status: r.status}) AS keys
		OPTIONAL MATCH (l:GraphSchemaElement {graph: i.graph, kind: i.element, id: i.constraintId})
		RETURN i ` + indexProjection + ` AS index, keys ORDER BY i.id`

	getIndexCypher = `MATCH (i:GraphSchemaIndex {graph: $graph, name: $name}) ` + indexWithKeys

	listIndicesCypher = `MATCH (i:GraphSchemaIndex {graph: $graph, element: $element}) ` + indexWithKeys

	setIndexStatusCypher = `MATCH (i:GraphSchemaIndex {graph: $graph, name: $name})-[r:INDEXES]->()
		WHERE r.status IN $from
		SET r.status = $to`

	showIndexCypher = `SHOW INDEXES YIELD name, state WHERE name = $name RETURN state`
)
