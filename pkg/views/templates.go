package views

// layoutHeader is the opening portion of the HTML layout.
const layoutHeader = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Scour</title>
    <style>
        body { font-family: ui-sans-serif, system-ui, sans-serif; margin: 2rem auto; max-width: 52rem; padding: 0 1rem; color: #1f2937; }
        header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 1px solid #e5e7eb; padding-bottom: 0.75rem; margin-bottom: 1.5rem; }
        header a { color: #1d4ed8; text-decoration: none; margin-left: 0.75rem; }
        form.search input[type=text] { width: 24rem; padding: 0.4rem; }
        table { border-collapse: collapse; width: 100%; }
        th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #f3f4f6; }
        td.num { text-align: right; font-variant-numeric: tabular-nums; }
        .muted { color: #6b7280; }
        .error { color: #b91c1c; }
    </style>
</head>
<body>
<header>
    <div><a href="/" style="margin-left:0"><strong>Scour</strong></a></div>
    <nav>
        <a href="/locations">Locations</a>
        {{if .User}}<span class="muted">{{.User}}</span>
        <form method="post" action="/logout" style="display:inline"><button type="submit">Log out</button></form>
        {{else}}<a href="/login">Log in</a>
        <a href="/register">Register</a>{{end}}
    </nav>
</header>
`

// layoutFooter closes the HTML layout.
const layoutFooter = `</body>
</html>
`

// homeBody renders the search form and index statistics.
const homeBody = `<form class="search" action="/search" method="get">
    <input type="text" name="q" placeholder="search terms" autofocus>
    <label><input type="checkbox" name="exact" value="1"> exact</label>
    <button type="submit">Search</button>
</form>
<p class="muted">{{.Terms}} terms across {{.Locations}} locations.</p>
`

// searchBody renders a ranked result list.
const searchBody = `<form class="search" action="/search" method="get">
    <input type="text" name="q" value="{{.Query}}">
    <label><input type="checkbox" name="exact" value="1"{{if .Exact}} checked{{end}}> exact</label>
    <button type="submit">Search</button>
</form>
{{if .Results}}
<table>
    <tr><th>Location</th><th>Matches</th><th>Score</th></tr>
    {{range .Results}}
    <tr>
        <td><a href="{{.Where}}">{{.Where}}</a></td>
        <td class="num">{{.Count}}</td>
        <td class="num">{{score .Score}}</td>
    </tr>
    {{end}}
</table>
{{else}}
<p class="muted">No results{{if .Query}} for &ldquo;{{.Query}}&rdquo;{{end}}.</p>
{{end}}
`

// locationsBody renders the location word-count table.
const locationsBody = `<h2>Indexed locations</h2>
{{if .Locations}}
<table>
    <tr><th>Location</th><th>Words</th></tr>
    {{range .Locations}}
    <tr><td><a href="{{.Location}}">{{.Location}}</a></td><td class="num">{{.Count}}</td></tr>
    {{end}}
</table>
{{else}}
<p class="muted">Nothing indexed yet.</p>
{{end}}
`

// loginBody renders the login form.
const loginBody = `<h2>Log in</h2>
{{if .Message}}<p class="error">{{.Message}}</p>{{end}}
<form method="post" action="/login">
    <p><input type="text" name="username" placeholder="username" autofocus></p>
    <p><input type="password" name="password" placeholder="password"></p>
    <p><button type="submit">Log in</button></p>
</form>
<p class="muted">No account? <a href="/register">Register</a>.</p>
`

// registerBody renders the registration form.
const registerBody = `<h2>Register</h2>
{{if .Message}}<p class="error">{{.Message}}</p>{{end}}
<form method="post" action="/register">
    <p><input type="text" name="username" placeholder="username" autofocus></p>
    <p><input type="password" name="password" placeholder="password"></p>
    <p><button type="submit">Register</button></p>
</form>
`
