package mysql

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getProfileByUserSQL = `
SELECT id, user_id, verified, type
FROM vendor_profiles
WHERE user_id = ?
`

const listIslandsSQL = `SELECT id, name FROM islands ORDER BY name, id`

const islandExistsSQL = `SELECT EXISTS(SELECT 1 FROM islands WHERE id = ?)`

// Times are stored as TIME and returned as HH:MM.
const getHotelSQL = `
SELECT
  id,
  vendor_id,
  name,
  description,
  price,
  cancellation_policy,
  images,
  island_id,
  star_rating,
  TIME_FORMAT(check_in_time, '%H:%i'),
  TIME_FORMAT(check_out_time, '%H:%i'),
  total_rooms,
  facilities,
  meal_plans,
  pets_allowed,
  children_allowed,
  accessibility_features,
  street_address,
  geo_lat,
  geo_lng,
  is_active
FROM hotels
WHERE id = ?
`

// -----------------------------------------------------------------------------
// WRITES
// -----------------------------------------------------------------------------

// Owner-scoped: a hotel of another vendor matches zero rows. is_active is
// never touched here.
const updateHotelSQL = `
UPDATE hotels SET
  name                   = ?,
  description            = ?,
  price                  = ?,
  cancellation_policy    = ?,
  images                 = ?,
  island_id              = ?,
  star_rating            = ?,
  check_in_time          = ?,
  check_out_time         = ?,
  total_rooms            = ?,
  facilities             = ?,
  meal_plans             = ?,
  pets_allowed           = ?,
  children_allowed       = ?,
  accessibility_features = ?,
  street_address         = ?,
  geo_lat                = ?,
  geo_lng                = ?,
  updated_at             = CURRENT_TIMESTAMP
WHERE id = ? AND vendor_id = ?
`

const hotelOwnedSQL = `SELECT EXISTS(SELECT 1 FROM hotels WHERE id = ? AND vendor_id = ?)`

const upsertIslandSQL = `
INSERT INTO islands (id, name)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE name = VALUES(name)
`

const upsertVendorSQL = `
INSERT INTO vendor_profiles (id, user_id, verified, type)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  user_id  = VALUES(user_id),
  verified = VALUES(verified),
  type     = VALUES(type)
`

const upsertHotelSQL = `
INSERT INTO hotels
  (id, vendor_id, name, description, price, cancellation_policy, images, island_id,
   star_rating, check_in_time, check_out_time, total_rooms, facilities, meal_plans,
   pets_allowed, children_allowed, accessibility_features, street_address,
   geo_lat, geo_lng, is_active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  vendor_id              = VALUES(vendor_id),
  name                   = VALUES(name),
  description            = VALUES(description),
  price                  = VALUES(price),
  cancellation_policy    = VALUES(cancellation_policy),
  images                 = VALUES(images),
  island_id              = VALUES(island_id),
  star_rating            = VALUES(star_rating),
  check_in_time          = VALUES(check_in_time),
  check_out_time         = VALUES(check_out_time),
  total_rooms            = VALUES(total_rooms),
  facilities             = VALUES(facilities),
  meal_plans             = VALUES(meal_plans),
  pets_allowed           = VALUES(pets_allowed),
  children_allowed       = VALUES(children_allowed),
  accessibility_features = VALUES(accessibility_features),
  street_address         = VALUES(street_address),
  geo_lat                = VALUES(geo_lat),
  geo_lng                = VALUES(geo_lng),
  is_active              = VALUES(is_active),
  updated_at             = CURRENT_TIMESTAMP
`
