package neo4j

import (
	"fmt"
	"strings"

	"github.com/redbco/graphschema/pkg/schema"
)

// nativeIndexName is the Neo4j index backing a composite index of a graph
// context. Characters outside [A-Za-z0-9_] become underscores.
func nativeIndexName(graph, index string) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
				return r
			}
			return '_'
		}, s)
	}
	return "gs_" + clean(graph) + "__" + clean(index)
}

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// nativeIndexCypher renders the statement creating the native index of a
// label-constrained composite index. Unique indices become uniqueness
// constraints, which own an index of the same name.
func nativeIndexCypher(name string, idx schema.Index) string {
	pattern := fmt.Sprintf("(x:%s)", quote(idx.Constraint))
	if idx.Element == schema.ElementEdge {
		pattern = fmt.Sprintf("()-[x:%s]-()", quote(idx.Constraint))
	}

	props := make([]string, 0, len(idx.Keys))
	for _, k := range idx.Keys {
		props = append(props, "x."+quote(k.Name))
	}

	if idx.Unique {
		return fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR %s REQUIRE (%s) IS UNIQUE",
			quote(name), pattern, strings.Join(props, ", "))
	}
	return fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR %s ON (%s)",
		quote(name), pattern, strings.Join(props, ", "))
}
