package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

type seedLevel struct {
	number      int
	description string
	words       []string
}

// defaultLevels are the ten playable levels, each drilling one difficulty
var defaultLevels = []seedLevel{
	{1, "Escritura básica: palabras simples", []string{"casa", "perro", "mesa", "gato", "luna"}},
	{2, "Confusión entre B y V", []string{"vaca", "burro", "nieve", "bota", "llave"}},
	{3, "Confusión entre C, S y Z", []string{"zapato", "cielo", "sopa", "taza", "cereza"}},
	{4, "Práctica de acentos", []string{"camión", "árbol", "lápiz", "canción", "sofá"}},
	{5, "Letras que se omiten", []string{"tren", "plato", "globo", "fresa", "cruz"}},
	{6, "Letras que se invierten", []string{"tigre", "libro", "cabra", "piedra", "grande"}},
	{7, "Separación silábica", []string{"mariposa", "pelota", "tomate", "caramelo", "muñeca"}},
	{8, "Palabras complejas", []string{"murciélago", "helicóptero", "biblioteca", "bicicleta", "refrigerador"}},
	{9, "Práctica mixta", []string{"ventana", "cabeza", "azúcar", "jirafa", "invierno"}},
	{10, "Escritura avanzada", []string{"extraordinario", "exhibición", "vergüenza", "ambulancia", "zanahoria"}},
}

// SeedLevels inserts the default levels and their words when the levels table is empty
func (db *DB) SeedLevels() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM levels").Scan(&count); err != nil {
		return fmt.Errorf("failed to count levels: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := db.WithTx(func(tx *Tx) error {
		for _, level := range defaultLevels {
			levelID, err := tx.ExecReturningID(
				"INSERT INTO levels (level_number, description) VALUES (?, ?)",
				level.number, level.description,
			)
			if err != nil {
				return fmt.Errorf("failed to seed level %d: %w", level.number, err)
			}

			for _, word := range level.words {
				if _, err := tx.Exec("INSERT INTO words (level_id, text) VALUES (?, ?)", levelID, word); err != nil {
					return fmt.Errorf("failed to seed word %q: %w", word, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("levels", len(defaultLevels)).Msg("seeded default levels")
	return nil
}
