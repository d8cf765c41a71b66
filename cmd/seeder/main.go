//cmd/seeder/main.go
package main

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "log"
    "os"

    _ "github.com/lib/pq"

    "github.com/unclebandit/loanchat-backend/internal/model"
    "github.com/unclebandit/loanchat-backend/internal/repository"
)

func main() {
    dsn := os.Getenv("DATABASE_URL")
    db, err := sql.Open("postgres", dsn)
    if err != nil {
        log.Fatal(err)
    }
    defer db.Close()

    schema, err := os.ReadFile("seed/schema.sql")
    if err != nil {
        log.Fatalf("failed to read seed/schema.sql: %v", err)
    }
    if _, err = db.Exec(string(schema)); err != nil {
        log.Fatalf("failed to apply schema: %v", err)
    }
    fmt.Println("Applied: seed/schema.sql")

    customerRepo := &repository.CustomerRepository{DB: db}
    offerRepo := &repository.OfferRepository{DB: db}

    var customers []model.Customer
    if err := loadJSON("data/customers.json", &customers); err != nil {
        log.Fatalf("failed to load customers: %v", err)
    }

    idMap := map[int]int{}
    for _, c := range customers {
        seedID := c.ID
        if err := customerRepo.Create(&c); err != nil {
            log.Fatalf("failed to seed customer %s: %v", c.Name, err)
        }
        idMap[seedID] = c.ID
        fmt.Printf("Seeded customer: %s (%s)\n", c.Name, c.Phone)
    }

    var offers []model.Offer
    if err := loadJSON("data/offers.json", &offers); err != nil {
        log.Fatalf("failed to load offers: %v", err)
    }

    for _, o := range offers {
        if mapped, ok := idMap[o.CustomerID]; ok {
            o.CustomerID = mapped
        }
        if err := offerRepo.Create(&o); err != nil {
            log.Fatalf("failed to seed offer for customer %d: %v", o.CustomerID, err)
        }
        fmt.Printf("Seeded offer: customer %d at %.1f%%\n", o.CustomerID, o.InterestRate)
    }

    fmt.Println("Database seeding completed successfully!")
}

func loadJSON(path string, out interface{}) error {
    content, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    return json.Unmarshal(content, out)
}
