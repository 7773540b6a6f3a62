package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/markup"
)

// customPageTemplate 是自定义页面的外层页面骨架。页面内容由 markup 包
// 渲染并清洗后注入。
var customPageTemplate = template.Must(template.New("custom_page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.Brand}}</title>
{{.HeadScripts}}
</head>
<body>
<main class="custom-page">
{{.Body}}
</main>
{{.BodyScripts}}
</body>
</html>
`))

// fallbackPanel 在页面内容无法渲染时展示，不泄露任何内部错误细节。
const fallbackPanel = `<div class="error-panel">
<h2>Something went wrong</h2>
<p>Please check back again later!</p>
<p>If you continue to see this, contact the site owner for help.</p>
</div>`

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Page not found</title></head>
<body><main><h1>404</h1><p>Page not found.</p></main></body>
</html>`

type customPageData struct {
	Title       string
	Brand       string
	Body        template.HTML
	HeadScripts template.HTML
	BodyScripts template.HTML
}

// ShowCustomPage resolves an unmatched request path against the custom page
// registry and renders the stored markup. A page whose markup no longer
// parses renders the fallback panel; it can never break routing or leak a
// failure outside its own response.
func (a *API) ShowCustomPage(c *gin.Context) {
	route, ok := a.registry.Lookup(c.Request.URL.Path)
	if !ok {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}

	body, err := markup.Render(route.Markup, a.components)
	if err != nil {
		c.Error(err)
		body = fallbackPanel
	}

	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
	}

	data := customPageData{
		Title:       route.Title,
		Brand:       settings.BrandName,
		Body:        template.HTML(body),
		HeadScripts: template.HTML(settings.HeadScripts),
		BodyScripts: template.HTML(settings.BodyScripts),
	}

	var buf bytes.Buffer
	if err := customPageTemplate.Execute(&buf, data); err != nil {
		c.Error(err)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fallbackPanel))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
