package mysql

const insertRunSQL = `
INSERT INTO ingest_runs
  (id, source, status, venues, rejected, error, started_at, finished_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  status      = VALUES(status),
  venues      = VALUES(venues),
  rejected    = VALUES(rejected),
  error       = VALUES(error),
  finished_at = VALUES(finished_at)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Newest first; matches the (source, started_at) index.
const latestRunsSQL = `
SELECT id, source, status, venues, rejected, error, started_at, finished_at
FROM ingest_runs
WHERE source = ?
ORDER BY started_at DESC, id DESC
LIMIT ?
`
