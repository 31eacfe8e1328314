package render

// =============================================================================
// Ignore File (.gitignore)
// =============================================================================

const gitignoreContent = `# Secrets and certificates
.env
*.pem
*.key
*.crt

# Odoo runtime
logs/
*.log
filestore/
sessions/

# Backups and database dumps
*.sql
*.dump
*.zip

# Python bytecode from custom addons
__pycache__/
*.py[cod]

# Editors and OS cruft
.vscode/
.idea/
*.swp
.DS_Store
Thumbs.db
`

// Gitignore returns the static version-control exclusion list. It does not
// depend on the config: the same patterns protect every generated bundle.
func Gitignore() string {
	return gitignoreContent
}
