// Package core defines the shared language of sqlfront.
//
// This package contains:
//   - The SQL abstract syntax tree (Node, Expr, Stmt and their variants)
//   - Auxiliary structures rendered through dialect hooks (ColumnDef,
//     OrderByExpr, Assignment, TableKey, AlterOperation)
//   - Verifier configuration shared by the database adapters
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
