package render

import (
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Reverse-Proxy Config (nginx/nginx.conf)
// =============================================================================

type nginxData struct {
	ServerName   string
	OdooHTTPPort int
	OdooChatPort int
	WebService   string
}

func newNginxData(cfg domain.StackConfig) nginxData {
	return nginxData{
		ServerName:   cfg.ServerName(),
		OdooHTTPPort: domain.OdooHTTPPort,
		OdooChatPort: domain.OdooChatPort,
		WebService:   domain.ServiceWeb,
	}
}

var nginxTmpl = template.Must(template.New("nginx.conf").Parse(`worker_processes auto;

events {
    worker_connections 1024;
}

http {
    include /etc/nginx/mime.types;
    default_type application/octet-stream;

    sendfile on;
    keepalive_timeout 65;
    client_max_body_size 128M;

    gzip on;
    gzip_types text/css application/javascript application/json image/svg+xml;

    upstream odoo {
        server {{ .WebService }}:{{ .OdooHTTPPort }};
    }

    upstream odoochat {
        server {{ .WebService }}:{{ .OdooChatPort }};
    }

    map $http_upgrade $connection_upgrade {
        default upgrade;
        ''      close;
    }

    server {
        listen 80;
        server_name {{ .ServerName }};

        proxy_read_timeout 720s;
        proxy_connect_timeout 720s;
        proxy_send_timeout 720s;

        proxy_set_header X-Forwarded-Host $host;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_set_header X-Real-IP $remote_addr;

        location /longpolling {
            proxy_pass http://odoochat;
            proxy_set_header Upgrade $http_upgrade;
            proxy_set_header Connection $connection_upgrade;
            proxy_buffering off;
        }

        location ~* /web/static/ {
            proxy_pass http://odoo;
            proxy_cache_valid 200 90m;
            expires 864000;
        }

        location / {
            proxy_pass http://odoo;
            proxy_redirect off;
        }

        access_log /var/log/nginx/odoo-access.log;
        error_log /var/log/nginx/odoo-error.log;
    }
}
`))

// NginxConf renders the reverse-proxy configuration: the longpolling path
// goes to the chat backend with upgrade headers and buffering off, static
// assets go to the main backend with a long cache expiry, everything else
// goes to the main backend. Server name is the configured domain or
// localhost.
//
// Only called when the config enables the proxy.
//
// This is a pure function with no side effects.
func NginxConf(cfg domain.StackConfig) string {
	return mustRender(nginxTmpl, newNginxData(cfg))
}
