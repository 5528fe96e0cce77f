// ABOUTME: C API wrapper for the recipecook library to enable FFI usage
// ABOUTME: Build with -buildmode=c-shared; every returned string must be freed

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"encoding/json"
	"sync"
	"unsafe"

	"recipe-cook-api/recipecook"
)

var (
	mu     sync.Mutex
	client *recipecook.Client
)

//export RecipeCookInit
func RecipeCookInit() C.int {
	return initClient()
}

//export RecipeCookInitWithCache
func RecipeCookInitWithCache(cacheType *C.char, cachePath *C.char) C.int {
	opt := recipecook.WithCacheOption(recipecook.CacheOption{Type: recipecook.CacheTypeMemory})
	if C.GoString(cacheType) == string(recipecook.CacheTypeSQLite) {
		opt = recipecook.WithCacheOption(recipecook.CacheOption{
			Type:     recipecook.CacheTypeSQLite,
			FilePath: C.GoString(cachePath),
		})
	}
	return initClient(opt)
}

//export RecipeCookInitWithRecipeDir
func RecipeCookInitWithRecipeDir(dir *C.char) C.int {
	return initClient(recipecook.WithRecipeDir(C.GoString(dir)))
}

func initClient(opts ...recipecook.Option) C.int {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		client.Close()
		client = nil
	}
	c, err := recipecook.NewClient(opts...)
	if err != nil {
		return -1
	}
	client = c
	return 0
}

//export RecipeCookClose
func RecipeCookClose() {
	mu.Lock()
	defer mu.Unlock()
	if client != nil {
		client.Close()
		client = nil
	}
}

// RecipeCookRun cooks data with a JSON or YAML recipe and returns the models
// as a JSON array, or {"error": ...}. paramsJSON is a JSON string array and
// may be NULL.
//
//export RecipeCookRun
func RecipeCookRun(recipeText *C.char, data *C.char, paramsJSON *C.char) *C.char {
	r, err := recipecook.ParseRecipe([]byte(C.GoString(recipeText)))
	if err != nil {
		return errorString(err)
	}
	return cook(recipecook.Request{Recipe: r, Data: C.GoString(data)}, paramsJSON)
}

// RecipeCookRunNamed cooks data with a recipe from the recipe directory.
//
//export RecipeCookRunNamed
func RecipeCookRunNamed(name *C.char, data *C.char, paramsJSON *C.char) *C.char {
	return cook(recipecook.Request{RecipeName: C.GoString(name), Data: C.GoString(data)}, paramsJSON)
}

func cook(req recipecook.Request, paramsJSON *C.char) *C.char {
	mu.Lock()
	c := client
	mu.Unlock()
	if c == nil {
		return C.CString(`{"error": "client not initialized"}`)
	}

	if paramsJSON != nil {
		if err := json.Unmarshal([]byte(C.GoString(paramsJSON)), &req.Params); err != nil {
			return C.CString(`{"error": "invalid params JSON"}`)
		}
	}

	res, err := c.CookJSON(context.Background(), req)
	if err != nil {
		return errorString(err)
	}
	return C.CString(string(res.Models))
}

func errorString(err error) *C.char {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return C.CString(string(data))
}

//export RecipeCookFreeString
func RecipeCookFreeString(str *C.char) {
	C.free(unsafe.Pointer(str))
}

// Required for building as shared library
func main() {}
