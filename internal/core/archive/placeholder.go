package archive

import "fmt"

// =============================================================================
// Placeholder Documents
// =============================================================================

// placeholderName is the file synthesized into folders that would otherwise
// be empty. Empty folders are not reliably representable in archive formats,
// so every structurally-required folder ships with at least this document.
const placeholderName = "README.md"

// placeholderDocs holds the explanatory text for each known runtime folder,
// keyed by folder path.
var placeholderDocs = map[string]string{
	"logs": `# logs/

Odoo writes its runtime log here once the stack is up: /var/log/odoo inside
the web container is bind-mounted to this folder.

The folder ships empty and fills at runtime. Log files are excluded from
version control by the bundle's .gitignore.
`,
	"addons": `# addons/

Drop custom or third-party Odoo modules here. The folder is bind-mounted
into the web container at /mnt/extra-addons, which is on the server's
addons path.

After adding a module, restart the stack and install it from the Apps menu.
`,
	"nginx/ssl": `# nginx/ssl/

Place the TLS certificate and private key for the reverse proxy here, then
extend nginx/nginx.conf with a TLS server block that references them.

Key material is excluded from version control by the bundle's .gitignore.
`,
}

// placeholderDoc returns the placeholder text for a folder. Folders without
// dedicated text get a generic note, so an empty folder never ships without
// an explanation.
func placeholderDoc(folder string) string {
	if doc, ok := placeholderDocs[folder]; ok {
		return doc
	}
	return fmt.Sprintf("# %s/\n\nThis folder is part of the deployment layout and is populated at runtime.\n", folder)
}
