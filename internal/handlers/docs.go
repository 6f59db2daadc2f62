package handlers

import (
	"html/template"
	"net/http"
)

const apiDocsHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Chess Rules API Documentation</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 20px;
        }
        .container {
            max-width: 960px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 20px 60px rgba(0, 0, 0, 0.3);
            overflow: hidden;
        }
        header {
            background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
            color: white;
            padding: 40px;
            text-align: center;
        }
        h1 { font-size: 36px; margin-bottom: 10px; }
        main { padding: 40px; }
        section { margin-bottom: 40px; }
        h2 {
            color: #1a1a2e;
            border-bottom: 2px solid #e9ecef;
            padding-bottom: 8px;
            margin-bottom: 20px;
        }
        .endpoint {
            background: #f8f9fa;
            border-left: 4px solid #667eea;
            border-radius: 4px;
            padding: 15px 20px;
            margin-bottom: 15px;
        }
        .method {
            display: inline-block;
            padding: 2px 10px;
            border-radius: 4px;
            font-weight: bold;
            font-size: 13px;
            color: white;
            margin-right: 10px;
        }
        .get { background: #28a745; }
        .post { background: #007bff; }
        code { font-family: 'SF Mono', Monaco, monospace; font-size: 14px; }
        pre {
            background: #1a1a2e;
            color: #e9ecef;
            padding: 15px;
            border-radius: 6px;
            overflow-x: auto;
            margin-top: 10px;
            font-size: 13px;
        }
        .note { color: #6c757d; font-size: 14px; margin-top: 6px; }
        footer {
            background: #f8f9fa;
            padding: 20px 40px;
            text-align: center;
            color: #6c757d;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Chess Rules API</h1>
            <p>Two-player chess sessions with full server-side move legalization</p>
        </header>
        <main>
            <section>
                <h2>Authentication</h2>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/auth/register</code>
                    <p class="note">Create an account. Body: email, password, displayName. Returns access + refresh tokens.</p>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/auth/login</code>
                    <p class="note">Body: email, password. Returns access + refresh tokens.</p>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/auth/refresh</code>
                    <p class="note">Body: refreshToken. Rotates the refresh token and returns a new pair.</p>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/auth/logout</code>
                    <p class="note">Requires Authorization: Bearer. Revokes all refresh tokens for the user.</p>
                </div>
                <div class="endpoint">
                    <span class="method get">GET</span><code>/api/auth/me</code>
                    <p class="note">Requires Authorization: Bearer. Returns the authenticated user.</p>
                </div>
                <div class="endpoint">
                    <span class="method get">GET</span><code>/api/auth/google</code>
                    <p class="note">Starts the Google sign-in flow. Callback: /api/auth/google/callback.</p>
                </div>
            </section>
            <section>
                <h2>Games</h2>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/games</code>
                    <p class="note">Create a session. Optional body field "setup" maps squares to piece descriptors for a custom position:</p>
                    <pre>{
  "displayName": "Alice",
  "setup": {
    "E1": "white king",
    "E8": "black king",
    "A1": "white rook"
  }
}</pre>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/games/{sessionId}/join</code>
                    <p class="note">Join as the second player. Send X-Player-ID to rejoin an existing seat.</p>
                </div>
                <div class="endpoint">
                    <span class="method get">GET</span><code>/api/games/{sessionId}</code>
                    <p class="note">Fetch the session, including the encoded board position and whose turn it is.</p>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/games/{sessionId}/moves</code>
                    <p class="note">Submit a move. Illegal moves are rejected with a reason and leave the position untouched:</p>
                    <pre>{
  "playerId": "a1b2c3d4",
  "from": "e2",
  "to": "e4"
}</pre>
                </div>
                <div class="endpoint">
                    <span class="method get">GET</span><code>/api/games/{sessionId}/moves</code>
                    <p class="note">Move history in order.</p>
                </div>
                <div class="endpoint">
                    <span class="method post">POST</span><code>/api/games/{sessionId}/resign</code>
                    <p class="note">Resign; the opponent wins.</p>
                </div>
            </section>
            <section>
                <h2>WebSocket</h2>
                <div class="endpoint">
                    <span class="method get">GET</span><code>/ws/games/{sessionId}</code>
                    <p class="note">Live session events: move, player_joined, resignation.</p>
                </div>
            </section>
        </main>
        <footer>
            <p>Chess Rules Service 1.0.0</p>
        </footer>
    </div>
</body>
</html>`

func ServeAPIDocs(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("docs").Parse(apiDocsHTML))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl.Execute(w, nil)
}
