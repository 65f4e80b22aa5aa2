package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createProduct(t *testing.T, app *fiber.App, token, desc, price string, stock int) int64 {
	t.Helper()
	resp := doJSON(t, app, "POST", "/products", token, fiber.Map{
		"description":   desc,
		"price":         price,
		"initial_stock": stock,
		"current_stock": stock,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: status %d, want 201", resp.StatusCode)
	}
	var p struct {
		ID int64 `json:"id"`
	}
	decode(t, resp, &p)
	return p.ID
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)
	prodID := createProduct(t, app, admin, "Linen Shirt", "129.90", 10)

	resp := doJSON(t, app, "POST", "/orders", admin, fiber.Map{
		"items": []fiber.Map{{"product_id": prodID, "quantity": 2}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: status %d, want 201", resp.StatusCode)
	}
	var order struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Items  []struct {
			ProductID int64  `json:"product_id"`
			Quantity  int    `json:"quantity"`
			UnitPrice string `json:"unit_price"`
		} `json:"items"`
	}
	decode(t, resp, &order)
	if order.Status != "PENDING" {
		t.Fatalf("status %q, want PENDING default", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].UnitPrice != "129.9" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	// stock got decremented
	var prod struct {
		CurrentStock int `json:"current_stock"`
	}
	getP := doJSON(t, app, "GET", "/products/1", admin, nil)
	decode(t, getP, &prod)
	if prod.CurrentStock != 8 {
		t.Fatalf("current_stock = %d, want 8", prod.CurrentStock)
	}

	// status update, then delete cascades items
	upd := doJSON(t, app, "PUT", "/orders/1", admin, fiber.Map{"status": "SHIPPED"})
	if upd.StatusCode != http.StatusOK {
		t.Fatalf("status update: %d, want 200", upd.StatusCode)
	}
	badStatus := doJSON(t, app, "PUT", "/orders/1", admin, fiber.Map{"status": "TELEPORTED"})
	if badStatus.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: %d, want 400", badStatus.StatusCode)
	}

	del := doJSON(t, app, "DELETE", "/orders/1", admin, nil)
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete order: %d, want 204", del.StatusCode)
	}
	gone := doJSON(t, app, "GET", "/orders/1", admin, nil)
	if gone.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted order: %d, want 404", gone.StatusCode)
	}
}

func TestOrderWithMissingProductPersistsNothing(t *testing.T) {
	app, db := newTestApp(t)
	admin := adminToken(t, app)
	prodID := createProduct(t, app, admin, "Denim Jacket", "349.50", 5)

	resp := doJSON(t, app, "POST", "/orders", admin, fiber.Map{
		"items": []fiber.Map{
			{"product_id": prodID, "quantity": 1},
			{"product_id": 99999, "quantity": 1},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}

	var orders, items int
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&items, `SELECT COUNT(*) FROM order_items`); err != nil {
		t.Fatal(err)
	}
	if orders != 0 || items != 0 {
		t.Fatalf("atomicity violated: %d orders, %d items persisted", orders, items)
	}
}

func TestProductImagesOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)
	prodID := createProduct(t, app, admin, "Wool Coat", "599.00", 4)

	add := doJSON(t, app, "POST", "/products/1/images", admin, []fiber.Map{
		{"url": "https://cdn.example.com/coat-front.jpg"},
		{"url": "https://cdn.example.com/coat-back.jpg"},
	})
	if add.StatusCode != http.StatusCreated {
		t.Fatalf("add images: status %d, want 201", add.StatusCode)
	}
	var created []struct {
		ID        int64  `json:"id"`
		ProductID int64  `json:"product_id"`
		URL       string `json:"url"`
	}
	decode(t, add, &created)
	if len(created) != 2 || created[0].ProductID != prodID {
		t.Fatalf("unexpected created images: %+v", created)
	}

	bad := doJSON(t, app, "POST", "/products/1/images", admin, []fiber.Map{{"url": "not a url"}})
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad url: status %d, want 400", bad.StatusCode)
	}

	list := doJSON(t, app, "GET", "/products/1/images", admin, nil)
	if list.StatusCode != http.StatusOK {
		t.Fatalf("list images: status %d, want 200", list.StatusCode)
	}
	var images []struct {
		ID int64 `json:"id"`
	}
	decode(t, list, &images)
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}

	del := doJSON(t, app, "DELETE", "/products/images/1", admin, nil)
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete image: status %d, want 204", del.StatusCode)
	}
	delAgain := doJSON(t, app, "DELETE", "/products/images/1", admin, nil)
	if delAgain.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing image: status %d, want 404", delAgain.StatusCode)
	}

	missing := doJSON(t, app, "GET", "/products/31337/images", admin, nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("images of missing product: status %d, want 404", missing.StatusCode)
	}
}
