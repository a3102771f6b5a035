package dashboard

import (
	"html/template"
	"time"

	"pulseboard/internal/helpers"
	"pulseboard/internal/models"
)

type pageData struct {
	models.Snapshot
	MaxCount int64
	HasData  bool
}

func newPageData(snapshot models.Snapshot) pageData {
	var maxCount int64
	for _, point := range snapshot.View.Series {
		if point.Count > maxCount {
			maxCount = point.Count
		}
	}
	return pageData{
		Snapshot: snapshot,
		MaxCount: maxCount,
		HasData:  !snapshot.UpdatedAt.IsZero(),
	}
}

var pageTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"count": helpers.FormatCount,
	"ago": func(t time.Time) string {
		return helpers.FormatRelative(t, time.Now())
	},
	"bar": helpers.BarPercent,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>pulseboard</title>
<style>
body{font-family:sans-serif;margin:0;background:#f5f6f8;color:#222}
header{display:flex;align-items:center;gap:1rem;padding:1rem 1.5rem;background:#fff;border-bottom:1px solid #e0e2e6}
header h1{font-size:1.1rem;margin:0}
main{padding:1.5rem;max-width:1100px;margin:0 auto}
.banner{background:#fdecea;border:1px solid #f5c6cb;color:#a94442;padding:.6rem 1rem;border-radius:4px;margin-bottom:1rem}
.tiles{display:flex;gap:1rem;margin-bottom:1.5rem}
.tile{flex:1;background:#fff;border:1px solid #e0e2e6;border-radius:6px;padding:1rem}
.tile .label{font-size:.75rem;text-transform:uppercase;color:#777}
.tile .value{font-size:1.8rem;font-weight:600}
.chart{display:flex;align-items:flex-end;gap:2px;height:140px;background:#fff;border:1px solid #e0e2e6;border-radius:6px;padding:1rem;margin-bottom:1.5rem}
.chart .col{flex:1;background:#4c7bd9;min-height:1px}
.grid{display:grid;grid-template-columns:1fr 1fr;gap:1rem}
.panel{background:#fff;border:1px solid #e0e2e6;border-radius:6px;padding:1rem}
.panel h2{font-size:.9rem;margin:0 0 .6rem}
table{width:100%;border-collapse:collapse;font-size:.85rem}
td{padding:.25rem 0;border-bottom:1px solid #f0f1f3}
td.num{text-align:right;color:#555}
.feed li{font-size:.85rem;margin-bottom:.3rem;list-style:none}
.feed .when{color:#999;margin-left:.4rem}
</style>
</head>
<body>
<header>
  <h1>pulseboard</h1>
  <form method="post" action="/api/refresh"><button type="submit">Refresh</button></form>
  <span>window: {{.Params.WindowDays}}d</span>
  {{if .HasData}}<span>updated {{ago .UpdatedAt}}</span>{{end}}
</header>
<main>
{{if eq .Status.State "error"}}<div class="banner">{{.Status.Message}}</div>{{end}}
{{if eq .Status.State "loading"}}<div class="banner">Loading…</div>{{end}}
{{if .HasData}}
<div class="tiles">
  <div class="tile"><div class="label">Page views</div><div class="value">{{count .View.Overview.PageViews}}</div></div>
  <div class="tile"><div class="label">Sessions</div><div class="value">{{count .View.Overview.Sessions}}</div></div>
  <div class="tile"><div class="label">Events</div><div class="value">{{count .View.Overview.Events}}</div></div>
</div>
<div class="chart">
  {{$max := .MaxCount}}
  {{range .View.Series}}<div class="col" title="{{.Day}}: {{.Count}}" style="height:{{bar .Count $max}}%"></div>{{end}}
</div>
<div class="grid">
  <div class="panel"><h2>Top events</h2><table>
    {{range .View.TopEvents}}<tr><td>{{.Name}}</td><td class="num">{{count .Count}}</td></tr>{{end}}
  </table></div>
  <div class="panel"><h2>Top pages</h2><table>
    {{range .View.TopPages}}<tr><td>{{.Path}}</td><td class="num">{{count .Count}}</td></tr>{{end}}
  </table></div>
  <div class="panel"><h2>Top referrers</h2><table>
    {{range .View.TopReferrers}}<tr><td>{{.Referrer}}</td><td class="num">{{count .Count}}</td></tr>{{end}}
  </table></div>
  <div class="panel"><h2>Top outbound</h2><table>
    {{range .View.TopOutbound}}<tr><td>{{.URL}}</td><td class="num">{{count .Count}}</td></tr>{{end}}
  </table></div>
</div>
<div class="panel" style="margin-top:1rem"><h2>Recent activity</h2><ul class="feed">
  {{range .View.Recent}}<li>{{.Type}}{{if .Name}} · {{.Name}}{{end}}{{if .Path}} · {{.Path}}{{end}}<span class="when">{{ago .CreatedAt}}</span></li>{{end}}
</ul></div>
{{end}}
</main>
</body>
</html>
`
