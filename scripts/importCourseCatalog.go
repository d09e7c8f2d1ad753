package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// Bulk-imports a course catalog from CourseCatalog.csv. Expected columns:
// title, description, category, level, language, price, instructor_id.
// Existing courses are matched by slug and updated in place.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 && i > 0 {
			log.Printf("Processing row %d...", i+1)
		}

		title := field(row, "title")
		if title == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(field(row, "price"), 64)
		if err != nil || price < 0 {
			price = 0
		}
		instructorID, err := strconv.Atoi(field(row, "instructor_id"))
		if err != nil || instructorID <= 0 {
			log.Printf("Row %d: missing instructor, skipping", i+2)
			skipped++
			continue
		}

		course := courseModels.Course{
			Title:        title,
			Slug:         courseModels.Slugify(title),
			Description:  field(row, "description"),
			Category:     field(row, "category"),
			Level:        field(row, "level"),
			Price:        price,
			InstructorID: uint(instructorID),
			Status:       courseModels.StatusDraft,
		}
		if language := field(row, "language"); language != "" {
			course.Language = language
		}

		var existing courseModels.Course
		if err := db.Where("slug = ?", course.Slug).First(&existing).Error; err == nil {
			existing.Title = course.Title
			existing.Description = course.Description
			existing.Category = course.Category
			existing.Level = course.Level
			existing.Price = course.Price
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Row %d: update failed: %v", i+2, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		if err := db.Create(&course).Error; err != nil {
			log.Printf("Row %d: insert failed: %v", i+2, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}
