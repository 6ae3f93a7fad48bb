// Package web serves the browser front end and a small JSON API.
//
// The page is rendered on the server from a session.Controller and submits
// plain HTML forms, so it works without JavaScript. A short script adds the
// "Processing..." label, the browser clipboard copy and live reloads driven
// by the /ws websocket.
//
// Routes:
//
//	GET  /                      page
//	POST /generate              form: topic
//	POST /tags/:index/delete    remove one tag
//	POST /copy                  copy all tags to the host clipboard
//	GET  /export.csv            download the tags as CSV
//	GET  /ws                    live state (websocket)
//	GET  /health                liveness
//	POST /api/v1/generate       stateless generation
//	GET  /api/v1/session        current state and stats
//	DELETE /api/v1/session/tags/:index
//	POST /api/v1/stats          stats for a tag list
//
// When enabled, the server advertises itself over mDNS as an _http._tcp
// service.
package web
