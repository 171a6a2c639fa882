package sqlite

import (
	"context"
	"database/sql"
)

// schema sets up the database. It runs on startup and is idempotent.
// IMPORTANT: users and foods must be created before the tables that
// reference them.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS foods (
    id TEXT PRIMARY KEY,
    owner_id TEXT,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    calories REAL NOT NULL,
    unit TEXT NOT NULL,
    price TEXT,
    shelf_life_days INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS inventory_batches (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    food_id TEXT NOT NULL,
    quantity REAL NOT NULL CHECK (quantity >= 0),
    acquired_on TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (user_id, food_id, acquired_on),
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS meal_plan (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    food_id TEXT NOT NULL,
    quantity REAL NOT NULL,
    weekday TEXT NOT NULL,
    weekday_rank INTEGER NOT NULL,
    eaten INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
);

-- food_id is not a foreign key: the log outlives catalog edits and deletes.
CREATE TABLE IF NOT EXISTS consumption_log (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    food_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    calories REAL NOT NULL,
    consumed_on TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TRIGGER IF NOT EXISTS consumption_log_no_update
BEFORE UPDATE ON consumption_log
BEGIN
    SELECT RAISE(ABORT, 'consumption_log is append-only');
END;

CREATE TRIGGER IF NOT EXISTS consumption_log_no_delete
BEFORE DELETE ON consumption_log
BEGIN
    SELECT RAISE(ABORT, 'consumption_log is append-only');
END;

CREATE TABLE IF NOT EXISTS shopping_cart (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    food_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    unit_price TEXT NOT NULL,
    total_price TEXT NOT NULL,
    purchased INTEGER NOT NULL DEFAULT 0,
    purchased_on TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dishes (
    id TEXT PRIMARY KEY,
    owner_id TEXT,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dish_ingredients (
    dish_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    food_id TEXT NOT NULL,
    quantity REAL NOT NULL,
    PRIMARY KEY (dish_id, position),
    FOREIGN KEY (dish_id) REFERENCES dishes(id) ON DELETE CASCADE,
    FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_foods_owner_name ON foods(owner_id, name) WHERE owner_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_batches_user_food ON inventory_batches(user_id, food_id, acquired_on);
CREATE INDEX IF NOT EXISTS idx_meal_plan_user ON meal_plan(user_id, weekday_rank);
CREATE INDEX IF NOT EXISTS idx_consumption_user_day ON consumption_log(user_id, consumed_on);
CREATE INDEX IF NOT EXISTS idx_cart_user ON shopping_cart(user_id, purchased);
CREATE INDEX IF NOT EXISTS idx_dishes_owner ON dishes(owner_id);
`

// templates seeds the shared catalog copied into every new account.
// Fixed IDs keep the seed idempotent.
const templates = `
INSERT OR IGNORE INTO foods (id, owner_id, name, category, calories, unit, price, shelf_life_days, created_at) VALUES
    ('tmpl-food-rice',    NULL, 'Rice',          'Grain',     1300, 'kg',    NULL, 365, 0),
    ('tmpl-food-eggs',    NULL, 'Eggs',          'Protein',     70, 'piece', NULL,  21, 0),
    ('tmpl-food-milk',    NULL, 'Milk',          'Dairy',      640, 'l',     NULL,   7, 0),
    ('tmpl-food-chicken', NULL, 'Chicken breast','Protein',   1650, 'kg',    NULL,   3, 0),
    ('tmpl-food-tomato',  NULL, 'Tomato',        'Vegetable',   18, 'piece', NULL,  10, 0),
    ('tmpl-food-bread',   NULL, 'Bread',         'Grain',      265, 'loaf',  NULL,   5, 0);

INSERT OR IGNORE INTO dishes (id, owner_id, name, description, created_at) VALUES
    ('tmpl-dish-omelette', NULL, 'Tomato omelette', 'Eggs scrambled with tomato', 0),
    ('tmpl-dish-chicken-rice', NULL, 'Chicken rice', 'Poached chicken over rice', 0);

INSERT OR IGNORE INTO dish_ingredients (dish_id, position, food_id, quantity) VALUES
    ('tmpl-dish-omelette', 0, 'tmpl-food-eggs', 3),
    ('tmpl-dish-omelette', 1, 'tmpl-food-tomato', 2),
    ('tmpl-dish-chicken-rice', 0, 'tmpl-food-chicken', 0.3),
    ('tmpl-dish-chicken-rice', 1, 'tmpl-food-rice', 0.2);
`

// runMigrations executes the schema setup and seeds the template catalog.
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, templates)
	return err
}
