// Command coconina runs and operates the Coco Nina storefront backend.
//
//	coconina serve                  # start the HTTP API
//	coconina route:list             # list named routes
//	coconina catalog:list -c rings  # print the catalog as the API sees it
//	coconina catalog:show <id>
//	coconina cache:warm             # refetch the catalog into the cache once
//	coconina cache:clear [id...]
//	coconina sku:generate -c bracelets -d DIC25 -s 1
//	coconina sku:parse COCO-NINA-DIC25-BR-001
//	coconina whatsapp -p "Pulsera Origen"
package main
