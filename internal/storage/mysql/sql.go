package mysql

const listHotelsSQL = `
SELECT id, name, address, created_at, updated_at
FROM hotels
ORDER BY id
`

const getHotelSQL = `
SELECT id, name, address, created_at, updated_at
FROM hotels
WHERE id = ?
`

const insertHotelSQL = `
INSERT INTO hotels (name, address, created_at, updated_at)
VALUES (?, ?, ?, ?)
`

const updateHotelSQL = `
UPDATE hotels
SET name = ?, address = ?, updated_at = ?
WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`
