package repository

import "strings"

// Sort key allowlists, mapping accepted query keys to store columns. Unknown
// keys are ignored rather than rejected, matching the list endpoints'
// externally observable behaviour.
var (
	customerSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}

	productSortColumns = map[string]string{
		"price":     "price",
		"name":      "name",
		"category":  "category",
		"stock":     "stock",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}

	orderSortColumns = map[string]string{
		"createdAt": "created_at",
		"total":     "total",
		"status":    "status",
	}
)

const defaultOrderBy = "created_at DESC"

// buildOrderBy translates a comma-separated sort spec ("-price,name") into an
// ORDER BY clause body using the given allowlist. A leading "-" means
// descending. Fields outside the allowlist are dropped; when nothing valid
// remains the default of newest-first applies.
func buildOrderBy(raw string, allowed map[string]string) string {
	if raw == "" {
		return defaultOrderBy
	}

	var clauses []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}

		column, ok := allowed[field]
		if !ok {
			continue
		}
		clauses = append(clauses, column+" "+dir)
	}

	if len(clauses) == 0 {
		return defaultOrderBy
	}
	return strings.Join(clauses, ", ")
}
